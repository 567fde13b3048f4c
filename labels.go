package promreg

import (
	"github.com/cespare/xxhash/v2"
	"github.com/ygrebnov/errorc"
)

// Label is a single name/value pair attached to a metric series.
type Label struct {
	Name  string
	Value string
}

// LabelSet is an ordered, immutable sequence of labels. Together with a metric
// name it identifies one exported time series. Insertion order is preserved
// and reproduced verbatim on emission; no implicit sorting is applied.
//
// The zero value is the distinct "unlabeled" identity.
type LabelSet struct {
	pairs []Label
	key   uint64
}

// separators framing names and values inside the identity hash. Both bytes are
// invalid in sanitized names, which keeps adjacent pairs from aliasing.
const (
	labelNameSep  = 0xff
	labelValueSep = 0xfe
)

// NewLabelSet builds a LabelSet from the given pairs, preserving their order.
// It panics with ErrDuplicateLabel when two pairs share a name.
func NewLabelSet(pairs ...Label) LabelSet {
	if len(pairs) == 0 {
		return LabelSet{}
	}
	for i := range pairs {
		for j := i + 1; j < len(pairs); j++ {
			if pairs[i].Name == pairs[j].Name {
				panic(errorc.With(ErrDuplicateLabel, errorc.String("label", pairs[i].Name)))
			}
		}
	}
	// copy to keep the set immutable even if the caller mutates its slice
	own := make([]Label, len(pairs))
	copy(own, pairs)
	return LabelSet{pairs: own, key: hashPairs(own)}
}

// hashPairs derives the identity key from the ordered content. The key is a
// map-lookup accelerator only; equality is always confirmed with Equal.
func hashPairs(pairs []Label) uint64 {
	d := xxhash.New()
	sep := [1]byte{}
	for _, p := range pairs {
		_, _ = d.WriteString(p.Name)
		sep[0] = labelNameSep
		_, _ = d.Write(sep[:])
		_, _ = d.WriteString(p.Value)
		sep[0] = labelValueSep
		_, _ = d.Write(sep[:])
	}
	return d.Sum64()
}

// Len returns the number of pairs in the set.
func (ls LabelSet) Len() int { return len(ls.pairs) }

// IsEmpty reports whether the set is the unlabeled identity.
func (ls LabelSet) IsEmpty() bool { return len(ls.pairs) == 0 }

// Equal reports whether both sets hold the same pairs in the same order.
func (ls LabelSet) Equal(other LabelSet) bool {
	if len(ls.pairs) != len(other.pairs) {
		return false
	}
	for i := range ls.pairs {
		if ls.pairs[i] != other.pairs[i] {
			return false
		}
	}
	return true
}

// Pairs returns a defensive copy of the ordered pairs.
func (ls LabelSet) Pairs() []Label {
	if len(ls.pairs) == 0 {
		return nil
	}
	out := make([]Label, len(ls.pairs))
	copy(out, ls.pairs)
	return out
}

// String renders the set in exposition-like form, for diagnostics.
func (ls LabelSet) String() string {
	if len(ls.pairs) == 0 {
		return "{}"
	}
	var b Buffer
	b.writeByte('{')
	for i, p := range ls.pairs {
		if i > 0 {
			b.writeByte(',')
		}
		b.writeString(p.Name)
		b.writeString(`="`)
		b.writeEscapedLabelValue(p.Value)
		b.writeByte('"')
	}
	b.writeByte('}')
	return b.String()
}

// validatedLabels applies the optional sanitizer to label names and verifies
// every name is within the accepted character set. Both the registry creation
// path and handle-level labeled addressing resolve label sets through it, so
// the two paths always land on the same series.
func validatedLabels(ls LabelSet, sanitize func(string) string) LabelSet {
	if sanitize != nil {
		ls = ls.sanitized(sanitize)
	}
	for _, p := range ls.pairs {
		if !validName(p.Name) {
			panic(errorc.With(ErrInvalidName, errorc.String("label", p.Name)))
		}
	}
	return ls
}

// sanitized returns the set with every label name passed through fn.
// The receiver is returned unchanged when no name is altered.
func (ls LabelSet) sanitized(fn func(string) string) LabelSet {
	changed := false
	for _, p := range ls.pairs {
		if fn(p.Name) != p.Name {
			changed = true
			break
		}
	}
	if !changed {
		return ls
	}
	out := make([]Label, len(ls.pairs))
	for i, p := range ls.pairs {
		out[i] = Label{Name: fn(p.Name), Value: p.Value}
	}
	return NewLabelSet(out...)
}
