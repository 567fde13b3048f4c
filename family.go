package promreg

import "sync"

// Handle is the common surface of the four concrete metric types. It carries
// enough identity for Registry.Unregister; value mutation happens on the
// concrete types.
type Handle interface {
	// Kind returns the metric kind of the handle.
	Kind() Kind
	// Name returns the family name the handle belongs to.
	Name() string
	// Labels returns a copy of the handle's label set pairs.
	Labels() []Label

	fam() *family
	labelSet() LabelSet
}

// family owns the metadata shared by every instance registered under one
// metric name. Metadata fields are immutable after creation; only the
// instance index mutates, guarded by mu.
type family struct {
	name    string
	kind    Kind
	help    string
	helpSet bool

	buckets   []float64 // histogram only, ascending, +Inf implicit
	quantiles []float64 // summary only, ascending
	window    int       // summary only, raw-sample window capacity

	// sanitize is the owning registry's name sanitizer, applied to label
	// names on handle-level labeled addressing.
	sanitize func(string) string

	mu    sync.RWMutex
	index map[uint64][]Handle // label-set key -> collision chain
	order []Handle            // creation order, drives emission
}

func newFamily(name string, kind Kind) *family {
	return &family{
		name:  name,
		kind:  kind,
		index: make(map[uint64][]Handle),
	}
}

// labelSetFor builds the label set for handle-level labeled addressing,
// applying the same sanitize and name validation steps the registry applies
// at creation time. Invalid label names panic with ErrInvalidName.
func (f *family) labelSetFor(labels []Label) LabelSet {
	return validatedLabels(NewLabelSet(labels...), f.sanitize)
}

// lookup returns the live instance for ls, if any. Hash hits are confirmed by
// exact comparison; collisions land in the same chain.
func (f *family) lookup(ls LabelSet) (Handle, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lookupLocked(ls)
}

func (f *family) lookupLocked(ls LabelSet) (Handle, bool) {
	for _, h := range f.index[ls.key] {
		if h.labelSet().Equal(ls) {
			return h, true
		}
	}
	return nil, false
}

// getOrCreate returns the live instance for ls, building and registering one
// with build on first use. Concurrent callers for the same label set receive
// the same instance.
func (f *family) getOrCreate(ls LabelSet, build func() Handle) Handle {
	if h, ok := f.lookup(ls); ok {
		return h
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if h, ok := f.lookupLocked(ls); ok {
		return h
	}
	h := build()
	f.index[ls.key] = append(f.index[ls.key], h)
	f.order = append(f.order, h)
	return h
}

// remove drops the instance from the lookup index and the emission order.
// The handle itself stays valid for callers still holding it; only future
// lookups stop seeing it. Removing an already-removed handle is a no-op.
func (f *family) remove(h Handle) bool {
	key := h.labelSet().key
	f.mu.Lock()
	defer f.mu.Unlock()

	chain := f.index[key]
	found := false
	for i, cur := range chain {
		if cur == h {
			chain = append(chain[:i], chain[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if len(chain) == 0 {
		delete(f.index, key)
	} else {
		f.index[key] = chain
	}
	for i, cur := range f.order {
		if cur == h {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true
}

// snapshot copies the current emission order so the encoder can walk it
// without holding the family lock.
func (f *family) snapshot() []Handle {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.order) == 0 {
		return nil
	}
	out := make([]Handle, len(f.order))
	copy(out, f.order)
	return out
}

func (f *family) seriesCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.order)
}
