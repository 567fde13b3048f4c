package promreg

// DefaultBuckets are the histogram boundaries applied when a histogram is
// created without explicit buckets. An implicit +Inf bucket always terminates
// the list.
var DefaultBuckets = []float64{5, 10, 25, 50, 75, 100, 250, 500, 750, 1000, 2500, 5000, 7500, 10000}

// DefaultQuantiles are the summary quantiles applied when a summary is created
// without explicit quantiles.
var DefaultQuantiles = []float64{0.01, 0.05, 0.5, 0.9, 0.95, 0.99, 0.999}

// DefaultWindow is the number of recent raw samples a summary keeps for
// quantile estimation when created without an explicit window capacity.
const DefaultWindow = 500

// registryConfig holds Registry configuration.
type registryConfig struct {
	// logger receives diagnostics for non-fatal internal oddities.
	// Default: no-op.
	logger logger

	// sanitize, when set, is applied to metric and label names before
	// registration. Default: nil (names must already be valid).
	sanitize func(string) string

	// defaultBuckets/defaultQuantiles/defaultWindow replace the package-level
	// defaults for metrics created without explicit configuration.
	defaultBuckets   []float64
	defaultQuantiles []float64
	defaultWindow    int
}

// defaultRegistryConfig centralizes default values for registryConfig.
func defaultRegistryConfig() registryConfig {
	return registryConfig{
		logger:           nil, // replaced with a no-op logger by New
		sanitize:         nil,
		defaultBuckets:   DefaultBuckets,
		defaultQuantiles: DefaultQuantiles,
		defaultWindow:    DefaultWindow,
	}
}

// Option configures a Registry constructed by New.
type Option func(*registryConfig)

// WithLogger routes registry diagnostics to l.
func WithLogger(l logger) Option {
	return func(cfg *registryConfig) { cfg.logger = l }
}

// WithSanitizer installs a name sanitizer applied to metric and label names
// before registration. Sanitize is the stock implementation.
func WithSanitizer(fn func(string) string) Option {
	return func(cfg *registryConfig) { cfg.sanitize = fn }
}

// WithDefaultBuckets replaces the default histogram boundaries for this
// registry.
func WithDefaultBuckets(bounds ...float64) Option {
	return func(cfg *registryConfig) { cfg.defaultBuckets = bounds }
}

// WithDefaultQuantiles replaces the default summary quantiles for this
// registry.
func WithDefaultQuantiles(quantiles ...float64) Option {
	return func(cfg *registryConfig) { cfg.defaultQuantiles = quantiles }
}

// WithDefaultWindow replaces the default summary sample window capacity for
// this registry.
func WithDefaultWindow(capacity int) Option {
	return func(cfg *registryConfig) { cfg.defaultWindow = capacity }
}

// metricConfig carries per-metric creation parameters.
type metricConfig struct {
	labels    LabelSet
	help      string
	helpSet   bool
	buckets   []float64
	quantiles []float64
	window    int
}

// MetricOption configures a single metric created through the registry.
type MetricOption func(*metricConfig)

// applyMetricOptions builds metricConfig from options.
func applyMetricOptions(opts []MetricOption) metricConfig {
	var cfg metricConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}

// WithLabels attaches an ordered label set to the created metric instance.
// Order is preserved on emission.
func WithLabels(pairs ...Label) MetricOption {
	ls := NewLabelSet(pairs...)
	return func(cfg *metricConfig) { cfg.labels = ls }
}

// WithLabelSet attaches a pre-built label set to the created metric instance.
func WithLabelSet(ls LabelSet) MetricOption {
	return func(cfg *metricConfig) { cfg.labels = ls }
}

// WithHelp sets the family help text emitted in the "# HELP" header.
// Supplying help text that conflicts with an earlier registration of the same
// name is a fatal consistency violation.
func WithHelp(help string) MetricOption {
	return func(cfg *metricConfig) {
		cfg.help = help
		cfg.helpSet = true
	}
}

// WithBuckets sets explicit histogram boundaries. Boundaries must be finite
// and strictly ascending; a trailing +Inf supplied by the caller is dropped
// since the terminal +Inf bucket is always implicit.
func WithBuckets(bounds ...float64) MetricOption {
	return func(cfg *metricConfig) { cfg.buckets = bounds }
}

// WithQuantiles sets explicit summary quantiles, each in (0, 1], strictly
// ascending.
func WithQuantiles(quantiles ...float64) MetricOption {
	return func(cfg *metricConfig) { cfg.quantiles = quantiles }
}

// WithWindow sets the summary's raw-sample window capacity.
func WithWindow(capacity int) MetricOption {
	return func(cfg *metricConfig) { cfg.window = capacity }
}
