package promreg

// Provider is the vendor-neutral instrumentation front-end contract the
// registry can be bound to. Implementations must be safe for concurrent use.
//
// This interface is designed to be minimal and stable. In case there is a
// need of new capabilities, we may later introduce separate optional
// interfaces rather than expanding this surface.
type Provider interface {
	Counter(name string, opts ...MetricOption) CounterHandle
	Gauge(name string, opts ...MetricOption) GaugeHandle
	Histogram(name string, opts ...MetricOption) HistogramHandle
	Summary(name string, opts ...MetricOption) SummaryHandle
}

// CounterHandle records monotonic counts.
// Methods must be safe for concurrent use.
type CounterHandle interface {
	Inc(labels ...Label)
	Add(delta float64, labels ...Label)
	Get(labels ...Label) float64
}

// GaugeHandle records values that can move up or down (e.g., current
// in-flight). Methods must be safe for concurrent use.
type GaugeHandle interface {
	Set(v float64, labels ...Label)
	Inc(labels ...Label)
	Dec(labels ...Label)
	Add(delta float64, labels ...Label)
	Sub(delta float64, labels ...Label)
	Get(labels ...Label) float64
}

// HistogramHandle records distribution of float64 measurements into buckets.
// Methods must be safe for concurrent use.
type HistogramHandle interface {
	Observe(v float64, labels ...Label)
}

// SummaryHandle records distribution of float64 measurements for windowed
// quantile estimation. Methods must be safe for concurrent use.
type SummaryHandle interface {
	Observe(v float64, labels ...Label)
	Record(v float64, labels ...Label)
}

// Provider returns the registry wrapped in the Provider contract, for code
// written against the vendor-neutral surface.
func (r *Registry) Provider() Provider {
	return registryProvider{r: r}
}

type registryProvider struct {
	r *Registry
}

func (p registryProvider) Counter(name string, opts ...MetricOption) CounterHandle {
	return p.r.Counter(name, opts...)
}

func (p registryProvider) Gauge(name string, opts ...MetricOption) GaugeHandle {
	return p.r.Gauge(name, opts...)
}

func (p registryProvider) Histogram(name string, opts ...MetricOption) HistogramHandle {
	return p.r.Histogram(name, opts...)
}

func (p registryProvider) Summary(name string, opts ...MetricOption) SummaryHandle {
	return p.r.Summary(name, opts...)
}
