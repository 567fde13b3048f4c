package promreg

import (
	"math"
	"strconv"
	"sync/atomic"

	"github.com/ygrebnov/errorc"
)

// Counter is a monotonic float64 cell. Increments with a negative delta
// panic; no decrement operation exists. All methods are safe for concurrent
// use; the value itself is updated lock-free.
type Counter struct {
	family *family
	labels LabelSet

	// float64 bit pattern, updated via CAS
	bits atomic.Uint64
}

func newCounter(f *family, ls LabelSet) *Counter {
	return &Counter{family: f, labels: ls}
}

// Kind returns KindCounter.
func (c *Counter) Kind() Kind { return KindCounter }

// Name returns the metric family name.
func (c *Counter) Name() string { return c.family.name }

// Labels returns a copy of the counter's label pairs.
func (c *Counter) Labels() []Label { return c.labels.Pairs() }

func (c *Counter) fam() *family       { return c.family }
func (c *Counter) labelSet() LabelSet { return c.labels }

// Inc increments by 1. With labels given, the increment lands on the sibling
// series for that label set, created on first use.
func (c *Counter) Inc(labels ...Label) {
	c.Add(1, labels...)
}

// Add increments by delta, which must be non-negative. With labels given, the
// increment lands on the sibling series for that label set, created on first
// use.
func (c *Counter) Add(delta float64, labels ...Label) {
	if delta < 0 {
		panic(errorc.With(ErrNegativeDelta,
			errorc.String("name", c.family.name),
			errorc.String("delta", strconv.FormatFloat(delta, 'g', -1, 64)),
		))
	}
	if len(labels) > 0 {
		c.With(labels...).Add(delta)
		return
	}
	addFloat(&c.bits, delta)
}

// Get returns the current value. With labels given, it returns the sibling
// series' value, or 0 when no such series exists; absence is a valid state,
// not a fault, and nothing is created.
func (c *Counter) Get(labels ...Label) float64 {
	if len(labels) > 0 {
		if h, ok := c.family.lookup(c.family.labelSetFor(labels)); ok {
			return h.(*Counter).Get()
		}
		return 0
	}
	return math.Float64frombits(c.bits.Load())
}

// With returns the sibling counter for the given label set within the same
// family, creating it on first use.
func (c *Counter) With(labels ...Label) *Counter {
	ls := c.family.labelSetFor(labels)
	h := c.family.getOrCreate(ls, func() Handle { return newCounter(c.family, ls) })
	return h.(*Counter)
}

// addFloat adds delta to a float64 stored as its bit pattern. Lock-free;
// concurrent adds are linearizable.
func addFloat(bits *atomic.Uint64, delta float64) {
	for {
		old := bits.Load()
		upd := math.Float64bits(math.Float64frombits(old) + delta)
		if bits.CompareAndSwap(old, upd) {
			return
		}
	}
}
