package promreg

import (
	"math"
	"strconv"
)

// Buffer is a growable byte buffer tailored to the exposition encoder. Unlike
// bytes.Buffer it distinguishes truncation (keep capacity, used between
// emissions) from Reset (drop the backing array entirely), so repeated
// emissions reuse already-grown capacity without reallocating.
//
// A Buffer is not safe for concurrent use; the registry serializes access to
// its own buffer, independent buffers need external serialization.
type Buffer struct {
	b []byte
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return len(b.b) }

// Cap returns the capacity of the backing array.
func (b *Buffer) Cap() int { return cap(b.b) }

// Bytes returns the current content. The slice aliases the backing array and
// is only valid until the next write or Reset.
func (b *Buffer) Bytes() []byte { return b.b }

// String returns a copy of the current content.
func (b *Buffer) String() string { return string(b.b) }

// Reset drops the backing array, returning the buffer to zero capacity.
func (b *Buffer) Reset() { b.b = nil }

// truncate empties the buffer while keeping its capacity.
func (b *Buffer) truncate() { b.b = b.b[:0] }

func (b *Buffer) writeByte(c byte)     { b.b = append(b.b, c) }
func (b *Buffer) writeString(s string) { b.b = append(b.b, s...) }

func (b *Buffer) writeUint64(v uint64) { b.b = strconv.AppendUint(b.b, v, 10) }

// writeCounterValue renders a counter sample: integral values print without a
// decimal point, fractional values print as floats.
func (b *Buffer) writeCounterValue(v float64) {
	if v == math.Trunc(v) && math.Abs(v) < 1<<63 {
		b.b = strconv.AppendInt(b.b, int64(v), 10)
		return
	}
	b.b = strconv.AppendFloat(b.b, v, 'g', -1, 64)
}

// writeSampleFloat renders gauge, histogram-boundary, sum and quantile values:
// whole numbers keep a trailing ".0", everything else prints in its shortest
// round-trip form. Infinities render as "+Inf"/"-Inf".
func (b *Buffer) writeSampleFloat(v float64) {
	switch {
	case math.IsInf(v, 1):
		b.writeString("+Inf")
	case math.IsInf(v, -1):
		b.writeString("-Inf")
	case math.IsNaN(v):
		b.writeString("NaN")
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		b.b = strconv.AppendFloat(b.b, v, 'f', 1, 64)
	default:
		b.b = strconv.AppendFloat(b.b, v, 'g', -1, 64)
	}
}

// writeCompactFloat renders a float in its shortest form, used for quantile
// label values ("0.5", "0.999").
func (b *Buffer) writeCompactFloat(v float64) {
	b.b = strconv.AppendFloat(b.b, v, 'g', -1, 64)
}

// writeEscapedHelp escapes backslashes and newlines per the exposition format
// rules for "# HELP" lines.
func (b *Buffer) writeEscapedHelp(s string) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.writeString(`\\`)
		case '\n':
			b.writeString(`\n`)
		default:
			b.writeByte(c)
		}
	}
}

// writeEscapedLabelValue escapes backslashes, double quotes and newlines per
// the exposition format rules for label values.
func (b *Buffer) writeEscapedLabelValue(s string) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.writeString(`\\`)
		case '"':
			b.writeString(`\"`)
		case '\n':
			b.writeString(`\n`)
		default:
			b.writeByte(c)
		}
	}
}
