package promreg

import (
	"bytes"
	"strings"
	"testing"
)

func TestEmit_EmptyRegistry(t *testing.T) {
	r := New()
	if got := r.EmitString(); got != "" {
		t.Fatalf("EmitString() = %q; want empty", got)
	}
	if got := r.Emit(); len(got) != 0 {
		t.Fatalf("Emit() = %q; want empty", got)
	}
}

func TestEmit_Deterministic(t *testing.T) {
	r := New()
	r.Counter("a_total", WithHelp("a help")).Add(3)
	r.Gauge("b_current").Set(1.5)
	r.Histogram("c_seconds", WithBuckets(1)).Observe(0.5)
	r.Summary("d_seconds", WithWindow(4), WithQuantiles(0.5)).Observe(2)

	first := string(r.Emit())
	second := r.EmitString()
	third := string(r.Emit())
	if first != second || second != third {
		t.Fatalf("emissions differ:\n%q\n%q\n%q", first, second, third)
	}

	var buf Buffer
	r.EmitTo(&buf)
	if buf.String() != first {
		t.Fatalf("EmitTo() = %q; want %q", buf.String(), first)
	}
}

func TestEmit_HeaderOncePerFamily(t *testing.T) {
	r := New()
	c := r.Counter("foo", WithHelp("counts things"))
	c.Inc()
	c.With(Label{Name: "k", Value: "a"}).Inc()
	c.With(Label{Name: "k", Value: "b"}).Inc()

	got := r.EmitString()
	if n := strings.Count(got, "# HELP foo"); n != 1 {
		t.Fatalf("HELP header count = %d; want 1\n%s", n, got)
	}
	if n := strings.Count(got, "# TYPE foo"); n != 1 {
		t.Fatalf("TYPE header count = %d; want 1\n%s", n, got)
	}
	if n := strings.Count(got, "\nfoo"); n != 3 {
		t.Fatalf("value line count = %d; want 3\n%s", n, got)
	}
}

func TestEmit_HelpOmittedWhenAbsent(t *testing.T) {
	r := New()
	r.Counter("bare").Inc()
	want := "# TYPE bare counter\nbare 1\n"
	if got := r.EmitString(); got != want {
		t.Fatalf("EmitString() = %q; want %q", got, want)
	}
}

func TestEmit_HelpEscaping(t *testing.T) {
	r := New()
	r.Counter("esc", WithHelp("line one\nand a \\ backslash")).Inc()
	got := r.EmitString()
	wantHeader := `# HELP esc line one\nand a \\ backslash` + "\n"
	if !strings.HasPrefix(got, wantHeader) {
		t.Fatalf("EmitString() = %q; want prefix %q", got, wantHeader)
	}
}

func TestEmit_LabelValueEscaping(t *testing.T) {
	r := New()
	r.Counter("esc", WithLabels(Label{Name: "path", Value: "a\"b\\c\nd"})).Inc()
	got := r.EmitString()
	wantLine := `esc{path="a\"b\\c\nd"} 1` + "\n"
	if !strings.HasSuffix(got, wantLine) {
		t.Fatalf("EmitString() = %q; want suffix %q", got, wantLine)
	}
}

func TestEmit_LabelOrderVerbatimSyntheticLast(t *testing.T) {
	r := New()
	h := r.Histogram("lat",
		WithBuckets(1),
		WithLabels(Label{Name: "zz", Value: "1"}, Label{Name: "aa", Value: "2"}),
	)
	h.Observe(0.5)

	got := r.EmitString()
	wantBucket := `lat_bucket{zz="1",aa="2",le="1.0"} 1` + "\n"
	if !strings.Contains(got, wantBucket) {
		t.Fatalf("EmitString() = %q; want bucket line %q (insertion order, le last)", got, wantBucket)
	}
}

func TestEmit_FamilyOrderIsCreationOrder(t *testing.T) {
	r := New()
	r.Counter("zebra").Inc()
	r.Counter("alpha").Inc()

	got := r.EmitString()
	if strings.Index(got, "zebra") > strings.Index(got, "alpha") {
		t.Fatalf("EmitString() = %q; want zebra (created first) before alpha", got)
	}
}

func TestEmit_GaugeFloatRendering(t *testing.T) {
	r := New()
	g := r.Gauge("g")
	g.Set(4)
	if got, want := r.EmitString(), "# TYPE g gauge\ng 4.0\n"; got != want {
		t.Fatalf("EmitString() = %q; want %q", got, want)
	}
	g.Set(-2.25)
	if got, want := r.EmitString(), "# TYPE g gauge\ng -2.25\n"; got != want {
		t.Fatalf("EmitString() = %q; want %q", got, want)
	}
}

func TestEmit_CounterIntegralRendering(t *testing.T) {
	r := New()
	c := r.Counter("c")
	c.Add(3)
	if got, want := r.EmitString(), "# TYPE c counter\nc 3\n"; got != want {
		t.Fatalf("EmitString() = %q; want %q", got, want)
	}
	c.Add(0.5)
	if got, want := r.EmitString(), "# TYPE c counter\nc 3.5\n"; got != want {
		t.Fatalf("EmitString() = %q; want %q", got, want)
	}
}

func TestEmit_BufferReuse(t *testing.T) {
	r := New()
	for i := 0; i < 20; i++ {
		r.Counter("c", WithLabels(Label{Name: "i", Value: string(rune('a' + i))})).Inc()
	}

	r.Emit()
	grown := r.BufferCap()
	if grown == 0 {
		t.Fatal("expected non-zero buffer capacity after emission")
	}

	// unchanged registry: re-emission must not grow the buffer
	r.Emit()
	if got := r.BufferCap(); got != grown {
		t.Fatalf("BufferCap() after re-emission = %d; want %d", got, grown)
	}

	r.ResetBuffer()
	if got := r.BufferCap(); got != 0 {
		t.Fatalf("BufferCap() after ResetBuffer = %d; want 0", got)
	}

	// emission works again from a cold buffer
	if got := r.Emit(); len(got) == 0 {
		t.Fatal("expected content after reset and re-emission")
	}
}

func TestWritePrometheus(t *testing.T) {
	r := New()
	r.Counter("foo").Add(2)

	var sink bytes.Buffer
	n, err := r.WritePrometheus(&sink)
	if err != nil {
		t.Fatalf("WritePrometheus returned error: %v", err)
	}
	want := "# TYPE foo counter\nfoo 2\n"
	if sink.String() != want {
		t.Fatalf("written = %q; want %q", sink.String(), want)
	}
	if n != len(want) {
		t.Fatalf("written bytes = %d; want %d", n, len(want))
	}
}

func TestEmit_TrailingNewlineWhenNonEmpty(t *testing.T) {
	r := New()
	r.Gauge("g").Set(1)
	got := r.EmitString()
	if !strings.HasSuffix(got, "\n") {
		t.Fatalf("EmitString() = %q; want trailing newline", got)
	}
	if strings.HasSuffix(got, "\n\n") {
		t.Fatalf("EmitString() = %q; want exactly one trailing newline", got)
	}
}

func TestEmit_MixedKindsFullDocument(t *testing.T) {
	r := New()
	r.Counter("requests_total", WithHelp("Total requests.")).Add(7)
	r.Gauge("in_flight").Set(2)
	h := r.Histogram("latency_ms", WithBuckets(10, 100))
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)
	s := r.Summary("size_bytes", WithWindow(8), WithQuantiles(0.5))
	s.Observe(100)
	s.Observe(200)

	want := "# HELP requests_total Total requests.\n" +
		"# TYPE requests_total counter\n" +
		"requests_total 7\n" +
		"# TYPE in_flight gauge\n" +
		"in_flight 2.0\n" +
		"# TYPE latency_ms histogram\n" +
		`latency_ms_bucket{le="10.0"} 1` + "\n" +
		`latency_ms_bucket{le="100.0"} 2` + "\n" +
		`latency_ms_bucket{le="+Inf"} 3` + "\n" +
		"latency_ms_count 3\n" +
		"latency_ms_sum 555.0\n" +
		"# TYPE size_bytes summary\n" +
		`size_bytes{quantile="0.5"} 100.0` + "\n" +
		"size_bytes_count 2\n" +
		"size_bytes_sum 300.0\n"
	if got := r.EmitString(); got != want {
		t.Fatalf("EmitString() =\n%s\nwant:\n%s", got, want)
	}
}
