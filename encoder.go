package promreg

import (
	"io"
	"sort"
)

// Emit serializes the full metric state in the Prometheus text exposition
// format and returns the encoded bytes. The returned slice aliases the
// registry's internal buffer and is valid until the next emission or
// ResetBuffer call; repeated emissions reuse already-grown capacity.
//
// Each instance is locked only transiently while its value is read, so one
// emission is a per-series consistent snapshot, not an atomic snapshot across
// all metrics.
func (r *Registry) Emit() []byte {
	r.emitMu.Lock()
	defer r.emitMu.Unlock()
	r.encode()
	return r.buf.Bytes()
}

// EmitString is Emit returning the encoding as a string. Emit and EmitString
// agree byte for byte in either call order.
func (r *Registry) EmitString() string {
	r.emitMu.Lock()
	defer r.emitMu.Unlock()
	r.encode()
	return r.buf.String()
}

// EmitTo encodes into a caller-owned buffer instead of the registry's
// internal one, replacing its content. Useful when emissions must run
// concurrently with each other.
func (r *Registry) EmitTo(buf *Buffer) {
	buf.truncate()
	r.encodeTo(buf, nil, nil)
}

// WritePrometheus writes the current exposition to w, typically from inside a
// scrape handler.
func (r *Registry) WritePrometheus(w io.Writer) (int, error) {
	r.emitMu.Lock()
	defer r.emitMu.Unlock()
	r.encode()
	return w.Write(r.buf.Bytes())
}

// BufferCap returns the capacity of the internal emission buffer.
func (r *Registry) BufferCap() int {
	r.emitMu.Lock()
	defer r.emitMu.Unlock()
	return r.buf.Cap()
}

// ResetBuffer drops the internal emission buffer back to zero capacity.
func (r *Registry) ResetBuffer() {
	r.emitMu.Lock()
	defer r.emitMu.Unlock()
	r.buf.Reset()
}

// encode rewrites the internal buffer with the current exposition. Callers
// hold emitMu.
func (r *Registry) encode() {
	r.buf.truncate()
	r.scratchCounts, r.scratchSamples = r.encodeTo(&r.buf, r.scratchCounts, r.scratchSamples)
}

// encodeTo walks every family in creation order and appends its header and
// value lines to buf. Families with no live instances emit nothing. The
// scratch slices are reused across instances and returned for reuse across
// emissions.
func (r *Registry) encodeTo(buf *Buffer, counts []uint64, samples []float64) ([]uint64, []float64) {
	for _, f := range r.familiesSnapshot() {
		instances := f.snapshot()
		if len(instances) == 0 {
			continue
		}
		writeHeader(buf, f)
		for _, h := range instances {
			switch m := h.(type) {
			case *Counter:
				writeCounterLine(buf, f.name, m)
			case *Gauge:
				writeGaugeLine(buf, f.name, m)
			case *Histogram:
				counts = writeHistogramLines(buf, f, m, counts)
			case *Summary:
				samples = writeSummaryLines(buf, f, m, samples)
			default:
				r.reportInvariant("unknown metric type in family", f.name)
			}
		}
	}
	return counts, samples
}

// writeHeader emits the HELP/TYPE pair, exactly once per family regardless of
// how many label sets live under the name. HELP is omitted entirely when the
// family has no help text.
func writeHeader(buf *Buffer, f *family) {
	if f.helpSet && f.help != "" {
		buf.writeString("# HELP ")
		buf.writeString(f.name)
		buf.writeByte(' ')
		buf.writeEscapedHelp(f.help)
		buf.writeByte('\n')
	}
	buf.writeString("# TYPE ")
	buf.writeString(f.name)
	buf.writeByte(' ')
	buf.writeString(f.kind.String())
	buf.writeByte('\n')
}

// writeLabels renders the label block for ls, appending the synthetic
// name/value pair last when syntheticName is non-empty. An empty block is
// omitted entirely.
func writeLabels(buf *Buffer, ls LabelSet, syntheticName string, synthetic func(*Buffer)) {
	if ls.IsEmpty() && syntheticName == "" {
		return
	}
	buf.writeByte('{')
	for i, p := range ls.pairs {
		if i > 0 {
			buf.writeByte(',')
		}
		buf.writeString(p.Name)
		buf.writeString(`="`)
		buf.writeEscapedLabelValue(p.Value)
		buf.writeByte('"')
	}
	if syntheticName != "" {
		if !ls.IsEmpty() {
			buf.writeByte(',')
		}
		buf.writeString(syntheticName)
		buf.writeString(`="`)
		synthetic(buf)
		buf.writeByte('"')
	}
	buf.writeByte('}')
}

func writeCounterLine(buf *Buffer, name string, c *Counter) {
	buf.writeString(name)
	writeLabels(buf, c.labels, "", nil)
	buf.writeByte(' ')
	buf.writeCounterValue(c.Get())
	buf.writeByte('\n')
}

func writeGaugeLine(buf *Buffer, name string, g *Gauge) {
	buf.writeString(name)
	writeLabels(buf, g.labels, "", nil)
	buf.writeByte(' ')
	buf.writeSampleFloat(g.Get())
	buf.writeByte('\n')
}

// writeHistogramLines emits one cumulative _bucket line per boundary in
// ascending order with the terminal le="+Inf", then _count and _sum.
func writeHistogramLines(buf *Buffer, f *family, h *Histogram, scratch []uint64) []uint64 {
	counts, sum, count := h.snapshot(scratch)

	cumulative := uint64(0)
	for i := range counts {
		cumulative += counts[i]
		buf.writeString(f.name)
		buf.writeString("_bucket")
		bound := i
		writeLabels(buf, h.labels, "le", func(b *Buffer) {
			if bound == len(f.buckets) {
				b.writeString("+Inf")
			} else {
				b.writeSampleFloat(f.buckets[bound])
			}
		})
		buf.writeByte(' ')
		buf.writeUint64(cumulative)
		buf.writeByte('\n')
	}

	buf.writeString(f.name)
	buf.writeString("_count")
	writeLabels(buf, h.labels, "", nil)
	buf.writeByte(' ')
	buf.writeUint64(count)
	buf.writeByte('\n')

	buf.writeString(f.name)
	buf.writeString("_sum")
	writeLabels(buf, h.labels, "", nil)
	buf.writeByte(' ')
	buf.writeSampleFloat(sum)
	buf.writeByte('\n')

	return counts
}

// writeSummaryLines sorts the current sample window once, emits one quantile
// line per configured quantile in ascending order, then _count and _sum from
// the exact unbounded counters.
func writeSummaryLines(buf *Buffer, f *family, s *Summary, scratch []float64) []float64 {
	samples, sum, count := s.snapshot(scratch)
	sort.Float64s(samples)

	for _, q := range f.quantiles {
		buf.writeString(f.name)
		qv := q
		writeLabels(buf, s.labels, "quantile", func(b *Buffer) {
			b.writeCompactFloat(qv)
		})
		buf.writeByte(' ')
		buf.writeSampleFloat(quantile(q, samples))
		buf.writeByte('\n')
	}

	buf.writeString(f.name)
	buf.writeString("_count")
	writeLabels(buf, s.labels, "", nil)
	buf.writeByte(' ')
	buf.writeUint64(count)
	buf.writeByte('\n')

	buf.writeString(f.name)
	buf.writeString("_sum")
	writeLabels(buf, s.labels, "", nil)
	buf.writeByte(' ')
	buf.writeSampleFloat(sum)
	buf.writeByte('\n')

	return samples
}
