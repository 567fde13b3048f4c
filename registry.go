package promreg

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ygrebnov/errorc"
)

// Registry owns metric families and their instances. It is safe for
// concurrent use: create-or-fetch operations, value mutation on returned
// handles and emission may all run from arbitrary goroutines.
//
// A Registry is constructed explicitly with New and passed to whatever needs
// it; the package does not assume a process-wide singleton.
type Registry struct {
	cfg    registryConfig
	logger logger

	mu       sync.RWMutex
	families map[string]*family
	order    []*family // creation order, drives emission

	// emission state, reused across emissions; guarded by emitMu
	emitMu         sync.Mutex
	buf            Buffer
	scratchCounts  []uint64
	scratchSamples []float64

	invariantReports atomic.Int32
}

// New constructs an empty Registry. Accepts optional functional options to
// customize behavior.
func New(opts ...Option) *Registry {
	cfg := defaultRegistryConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	l := cfg.logger
	if l == nil {
		l = discardLogger
	}
	return &Registry{
		cfg:      cfg,
		logger:   l,
		families: make(map[string]*family),
	}
}

// Counter returns the counter instance for the given name and label set,
// creating it on first use. Identical (name, labels) requests return the same
// instance. A name already registered with a different kind or conflicting
// help text panics.
func (r *Registry) Counter(name string, opts ...MetricOption) *Counter {
	cfg := applyMetricOptions(opts)
	f := r.familyFor(name, KindCounter, &cfg)
	h := f.getOrCreate(cfg.labels, func() Handle { return newCounter(f, cfg.labels) })
	return h.(*Counter)
}

// Gauge returns the gauge instance for the given name and label set, creating
// it on first use.
func (r *Registry) Gauge(name string, opts ...MetricOption) *Gauge {
	cfg := applyMetricOptions(opts)
	f := r.familyFor(name, KindGauge, &cfg)
	h := f.getOrCreate(cfg.labels, func() Handle { return newGauge(f, cfg.labels) })
	return h.(*Gauge)
}

// Histogram returns the histogram instance for the given name and label set,
// creating it on first use. Explicit buckets that conflict with an earlier
// registration of the same name panic.
func (r *Registry) Histogram(name string, opts ...MetricOption) *Histogram {
	cfg := applyMetricOptions(opts)
	f := r.familyFor(name, KindHistogram, &cfg)
	h := f.getOrCreate(cfg.labels, func() Handle { return newHistogram(f, cfg.labels) })
	return h.(*Histogram)
}

// Summary returns the summary instance for the given name and label set,
// creating it on first use.
func (r *Registry) Summary(name string, opts ...MetricOption) *Summary {
	cfg := applyMetricOptions(opts)
	f := r.familyFor(name, KindSummary, &cfg)
	h := f.getOrCreate(cfg.labels, func() Handle { return newSummary(f, cfg.labels) })
	return h.(*Summary)
}

// Unregister removes the instance from future lookups and emissions. Handles
// already held by callers stay usable; their updates simply stop being
// exported. Family metadata survives the last instance, so a later
// re-creation of the same (name, labels) starts from zeroed state under the
// same metadata. Unregistering twice is a no-op.
func (r *Registry) Unregister(h Handle) {
	if h == nil {
		return
	}
	f := h.fam()
	r.mu.RLock()
	owned := r.families[f.name] == f
	r.mu.RUnlock()
	if !owned {
		if isDebugBuild() {
			panic(errorc.With(ErrForeignHandle, errorc.String("name", f.name)))
		}
		r.reportInvariant("unregister of foreign handle", f.name)
		return
	}
	f.remove(h)
}

// familyFor resolves (and on first use creates) the family for name,
// validating cross-call consistency. Kind, help and histogram bucket
// conflicts are fatal.
func (r *Registry) familyFor(name string, kind Kind, cfg *metricConfig) *family {
	if r.cfg.sanitize != nil {
		name = r.cfg.sanitize(name)
	}
	if !validName(name) {
		panic(errorc.With(ErrInvalidName, errorc.String("name", name)))
	}
	cfg.labels = validatedLabels(cfg.labels, r.cfg.sanitize)

	r.mu.RLock()
	f, ok := r.families[name]
	r.mu.RUnlock()
	if ok {
		r.validateFamily(f, kind, cfg)
		return f
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok = r.families[name]; ok {
		r.validateFamily(f, kind, cfg)
		return f
	}
	f = r.newFamilyFor(name, kind, cfg)
	r.families[name] = f
	r.order = append(r.order, f)
	return f
}

// validateFamily enforces the cross-instance consistency invariants for an
// existing family. Violations never proceed silently.
func (r *Registry) validateFamily(f *family, kind Kind, cfg *metricConfig) {
	if f.kind != kind {
		panic(errorc.With(ErrKindConflict,
			errorc.String("name", f.name),
			errorc.String("registered", f.kind.String()),
			errorc.String("requested", kind.String()),
		))
	}
	if cfg.helpSet && (!f.helpSet || f.help != cfg.help) {
		panic(errorc.With(ErrHelpConflict,
			errorc.String("name", f.name),
			errorc.String("registered", f.help),
			errorc.String("requested", cfg.help),
		))
	}
	if kind == KindHistogram && cfg.buckets != nil {
		if !equalFloats(normalizeBuckets(cfg.buckets), f.buckets) {
			panic(errorc.With(ErrBucketsConflict, errorc.String("name", f.name)))
		}
	}
	if kind == KindSummary && cfg.quantiles != nil && !equalFloats(cfg.quantiles, f.quantiles) {
		// quantile configuration is advisory after creation; first writer wins
		r.logger.Debugf("%s: summary %q keeps its original quantiles", Namespace, f.name)
	}
}

// newFamilyFor builds a family from the creation-time configuration, filling
// unset histogram/summary parameters from registry defaults.
func (r *Registry) newFamilyFor(name string, kind Kind, cfg *metricConfig) *family {
	f := newFamily(name, kind)
	f.sanitize = r.cfg.sanitize
	if cfg.helpSet {
		f.help = cfg.help
		f.helpSet = true
	}
	switch kind {
	case KindHistogram:
		bounds := cfg.buckets
		if bounds == nil {
			bounds = r.cfg.defaultBuckets
		}
		f.buckets = normalizeBuckets(bounds)
	case KindSummary:
		quantiles := cfg.quantiles
		if quantiles == nil {
			quantiles = r.cfg.defaultQuantiles
		}
		f.quantiles = validatedQuantiles(quantiles)
		window := cfg.window
		if window == 0 {
			window = r.cfg.defaultWindow
		}
		if window <= 0 {
			panic(errorc.With(ErrInvalidWindow,
				errorc.String("name", name),
				errorc.String("capacity", strconv.Itoa(window)),
			))
		}
		f.window = window
	}
	return f
}

// normalizeBuckets copies and validates histogram boundaries: finite, strictly
// ascending. A trailing +Inf is dropped since the terminal bucket is implicit.
func normalizeBuckets(bounds []float64) []float64 {
	if n := len(bounds); n > 0 && math.IsInf(bounds[n-1], 1) {
		bounds = bounds[:n-1]
	}
	out := make([]float64, len(bounds))
	copy(out, bounds)
	for i, b := range out {
		if math.IsInf(b, 0) || math.IsNaN(b) || (i > 0 && out[i-1] >= b) {
			panic(errorc.With(ErrInvalidBuckets,
				errorc.String("boundary", strconv.FormatFloat(b, 'g', -1, 64)),
			))
		}
	}
	return out
}

// validatedQuantiles copies and validates summary quantiles: each in (0, 1],
// strictly ascending.
func validatedQuantiles(quantiles []float64) []float64 {
	out := make([]float64, len(quantiles))
	copy(out, quantiles)
	for i, q := range out {
		if q <= 0 || q > 1 || math.IsNaN(q) || (i > 0 && out[i-1] >= q) {
			panic(errorc.With(ErrInvalidQuantiles,
				errorc.String("quantile", strconv.FormatFloat(q, 'g', -1, 64)),
			))
		}
	}
	return out
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// familiesSnapshot copies the current family order for the encoder.
func (r *Registry) familiesSnapshot() []*family {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return nil
	}
	out := make([]*family, len(r.order))
	copy(out, r.order)
	return out
}

// reportInvariant reports unexpected internal states. In debug and race
// builds it panics to catch bugs early; otherwise it logs a bounded number of
// warnings per registry.
func (r *Registry) reportInvariant(kind, name string) {
	const maxReports = 10
	msg := "[" + Namespace + "] invariant violation: " + kind + " (" + name + ")"
	if isDebugBuild() {
		panic(msg)
	}
	if r.invariantReports.Add(1) > maxReports {
		return
	}
	r.logger.Warnf("%s", msg)
}

// isDebugBuild reports whether we're in a "debug" or "race" build.
func isDebugBuild() bool {
	return raceBuild || debugBuild
}
