package promreg

import "sync"

// Histogram counts observations into fixed ascending buckets terminated by an
// implicit +Inf bucket. Each observation increments exactly one bucket slot
// (the first boundary the value fits under); cumulative totals are computed
// at emission time by prefix-summing in boundary order. Safe for concurrent
// use.
type Histogram struct {
	family *family
	labels LabelSet

	mu     sync.Mutex
	counts []uint64 // one slot per boundary plus the +Inf slot, non-cumulative
	sum    float64
	count  uint64
}

func newHistogram(f *family, ls LabelSet) *Histogram {
	return &Histogram{
		family: f,
		labels: ls,
		counts: make([]uint64, len(f.buckets)+1),
	}
}

// Kind returns KindHistogram.
func (h *Histogram) Kind() Kind { return KindHistogram }

// Name returns the metric family name.
func (h *Histogram) Name() string { return h.family.name }

// Labels returns a copy of the histogram's label pairs.
func (h *Histogram) Labels() []Label { return h.labels.Pairs() }

// Buckets returns a copy of the configured finite boundaries.
func (h *Histogram) Buckets() []float64 {
	out := make([]float64, len(h.family.buckets))
	copy(out, h.family.buckets)
	return out
}

func (h *Histogram) fam() *family       { return h.family }
func (h *Histogram) labelSet() LabelSet { return h.labels }

// Observe records v. With labels given, the observation lands on the sibling
// series for that label set, created on first use.
func (h *Histogram) Observe(v float64, labels ...Label) {
	if len(labels) > 0 {
		h.With(labels...).Observe(v)
		return
	}
	h.mu.Lock()
	h.sum += v
	h.count++
	bounds := h.family.buckets
	slot := len(bounds) // +Inf fallback
	for i, b := range bounds {
		if v <= b {
			slot = i
			break
		}
	}
	h.counts[slot]++
	h.mu.Unlock()
}

// Count returns the total number of observations.
func (h *Histogram) Count(labels ...Label) uint64 {
	if len(labels) > 0 {
		if other, ok := h.family.lookup(h.family.labelSetFor(labels)); ok {
			return other.(*Histogram).Count()
		}
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Sum returns the sum of all observed values.
func (h *Histogram) Sum(labels ...Label) float64 {
	if len(labels) > 0 {
		if other, ok := h.family.lookup(h.family.labelSetFor(labels)); ok {
			return other.(*Histogram).Sum()
		}
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sum
}

// With returns the sibling histogram for the given label set within the same
// family, creating it on first use. Siblings share the family's bucket
// boundaries.
func (h *Histogram) With(labels ...Label) *Histogram {
	ls := h.family.labelSetFor(labels)
	got := h.family.getOrCreate(ls, func() Handle { return newHistogram(h.family, ls) })
	return got.(*Histogram)
}

// snapshot copies state for the encoder under the instance lock.
func (h *Histogram) snapshot(counts []uint64) (_ []uint64, sum float64, count uint64) {
	h.mu.Lock()
	counts = append(counts[:0], h.counts...)
	sum = h.sum
	count = h.count
	h.mu.Unlock()
	return counts, sum, count
}
