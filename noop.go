package promreg

// NewNoopProvider returns a Provider whose instruments discard every update.
// Useful as a default when metrics collection is disabled.
func NewNoopProvider() Provider {
	return noopProvider{}
}

type noopProvider struct{}

func (noopProvider) Counter(string, ...MetricOption) CounterHandle     { return noopCounter{} }
func (noopProvider) Gauge(string, ...MetricOption) GaugeHandle         { return noopGauge{} }
func (noopProvider) Histogram(string, ...MetricOption) HistogramHandle { return noopHistogram{} }
func (noopProvider) Summary(string, ...MetricOption) SummaryHandle     { return noopSummary{} }

type noopCounter struct{}

func (noopCounter) Inc(...Label)          {}
func (noopCounter) Add(float64, ...Label) {}
func (noopCounter) Get(...Label) float64  { return 0 }

type noopGauge struct{}

func (noopGauge) Set(float64, ...Label) {}
func (noopGauge) Inc(...Label)          {}
func (noopGauge) Dec(...Label)          {}
func (noopGauge) Add(float64, ...Label) {}
func (noopGauge) Sub(float64, ...Label) {}
func (noopGauge) Get(...Label) float64  { return 0 }

type noopHistogram struct{}

func (noopHistogram) Observe(float64, ...Label) {}

type noopSummary struct{}

func (noopSummary) Observe(float64, ...Label) {}
func (noopSummary) Record(float64, ...Label)  {}
