package promreg

import (
	"math"
	"sync"
)

// Summary keeps an exact running count and sum plus a bounded ring of the
// most recent raw samples used to estimate quantiles on demand. Once the ring
// is full the oldest sample is overwritten, so quantile estimates are
// windowed over recent traffic while count and sum stay exact and unbounded.
// Safe for concurrent use.
type Summary struct {
	family *family
	labels LabelSet

	mu     sync.Mutex
	sum    float64
	count  uint64
	window []float64 // ring of capacity family.window
	cursor uint64    // total writes; next slot = cursor % capacity
}

func newSummary(f *family, ls LabelSet) *Summary {
	return &Summary{
		family: f,
		labels: ls,
		window: make([]float64, f.window),
	}
}

// Kind returns KindSummary.
func (s *Summary) Kind() Kind { return KindSummary }

// Name returns the metric family name.
func (s *Summary) Name() string { return s.family.name }

// Labels returns a copy of the summary's label pairs.
func (s *Summary) Labels() []Label { return s.labels.Pairs() }

// Quantiles returns a copy of the configured quantiles.
func (s *Summary) Quantiles() []float64 {
	out := make([]float64, len(s.family.quantiles))
	copy(out, s.family.quantiles)
	return out
}

func (s *Summary) fam() *family       { return s.family }
func (s *Summary) labelSet() LabelSet { return s.labels }

// Observe records v. With labels given, the observation lands on the sibling
// series for that label set, created on first use.
func (s *Summary) Observe(v float64, labels ...Label) {
	if len(labels) > 0 {
		s.With(labels...).Observe(v)
		return
	}
	s.mu.Lock()
	s.count++
	s.sum += v
	s.window[s.cursor%uint64(len(s.window))] = v
	s.cursor++
	s.mu.Unlock()
}

// Record is an alias for Observe.
func (s *Summary) Record(v float64, labels ...Label) { s.Observe(v, labels...) }

// Count returns the exact total number of observations, independent of the
// sample window.
func (s *Summary) Count(labels ...Label) uint64 {
	if len(labels) > 0 {
		if other, ok := s.family.lookup(s.family.labelSetFor(labels)); ok {
			return other.(*Summary).Count()
		}
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Sum returns the exact sum of all observed values.
func (s *Summary) Sum(labels ...Label) float64 {
	if len(labels) > 0 {
		if other, ok := s.family.lookup(s.family.labelSetFor(labels)); ok {
			return other.(*Summary).Sum()
		}
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sum
}

// With returns the sibling summary for the given label set within the same
// family, creating it on first use. Siblings share the family's quantiles and
// window capacity.
func (s *Summary) With(labels ...Label) *Summary {
	ls := s.family.labelSetFor(labels)
	got := s.family.getOrCreate(ls, func() Handle { return newSummary(s.family, ls) })
	return got.(*Summary)
}

// snapshot copies state for the encoder under the instance lock. samples
// holds the current window contents in unspecified order.
func (s *Summary) snapshot(samples []float64) (_ []float64, sum float64, count uint64) {
	s.mu.Lock()
	filled := s.cursor
	if capacity := uint64(len(s.window)); filled > capacity {
		filled = capacity
	}
	samples = append(samples[:0], s.window[:filled]...)
	sum = s.sum
	count = s.count
	s.mu.Unlock()
	return samples, sum, count
}

// quantile estimates the q-quantile of sortedValues by rank interpolation:
// an exact integer rank position averages the two straddling ranks (clamped
// to the extremes), a fractional position rounds up to the nearest rank.
// An empty input yields 0.
func quantile(q float64, sortedValues []float64) float64 {
	n := len(sortedValues)
	switch n {
	case 0:
		return 0
	case 1:
		return sortedValues[0]
	}
	pos := float64(n) * q
	if pos == math.Trunc(pos) {
		rank := int(pos)
		switch {
		case rank < 2:
			return sortedValues[0]
		case rank == n:
			return sortedValues[n-1]
		default:
			return (sortedValues[rank-1] + sortedValues[rank]) / 2
		}
	}
	return sortedValues[int(math.Ceil(pos))-1]
}
