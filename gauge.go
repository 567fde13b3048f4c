package promreg

import (
	"math"
	"sync/atomic"
)

// Gauge is an arbitrary-valued float64 cell. All methods are safe for
// concurrent use; the value itself is updated lock-free.
type Gauge struct {
	family *family
	labels LabelSet

	// float64 bit pattern
	bits atomic.Uint64
}

func newGauge(f *family, ls LabelSet) *Gauge {
	return &Gauge{family: f, labels: ls}
}

// Kind returns KindGauge.
func (g *Gauge) Kind() Kind { return KindGauge }

// Name returns the metric family name.
func (g *Gauge) Name() string { return g.family.name }

// Labels returns a copy of the gauge's label pairs.
func (g *Gauge) Labels() []Label { return g.labels.Pairs() }

func (g *Gauge) fam() *family       { return g.family }
func (g *Gauge) labelSet() LabelSet { return g.labels }

// Set replaces the current value. With labels given, the write lands on the
// sibling series for that label set, created on first use.
func (g *Gauge) Set(v float64, labels ...Label) {
	if len(labels) > 0 {
		g.With(labels...).Set(v)
		return
	}
	g.bits.Store(math.Float64bits(v))
}

// Inc increments by 1.
func (g *Gauge) Inc(labels ...Label) { g.Add(1, labels...) }

// Dec decrements by 1.
func (g *Gauge) Dec(labels ...Label) { g.Add(-1, labels...) }

// Add adds delta, which may be negative. With labels given, the update lands
// on the sibling series for that label set, created on first use.
func (g *Gauge) Add(delta float64, labels ...Label) {
	if len(labels) > 0 {
		g.With(labels...).Add(delta)
		return
	}
	addFloat(&g.bits, delta)
}

// Sub subtracts delta.
func (g *Gauge) Sub(delta float64, labels ...Label) { g.Add(-delta, labels...) }

// Get returns the current value. With labels given, it returns the sibling
// series' value, or 0 when no such series exists; nothing is created.
func (g *Gauge) Get(labels ...Label) float64 {
	if len(labels) > 0 {
		if h, ok := g.family.lookup(g.family.labelSetFor(labels)); ok {
			return h.(*Gauge).Get()
		}
		return 0
	}
	return math.Float64frombits(g.bits.Load())
}

// With returns the sibling gauge for the given label set within the same
// family, creating it on first use.
func (g *Gauge) With(labels ...Label) *Gauge {
	ls := g.family.labelSetFor(labels)
	h := g.family.getOrCreate(ls, func() Handle { return newGauge(g.family, ls) })
	return h.(*Gauge)
}
