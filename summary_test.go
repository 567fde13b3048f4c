package promreg

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuantile(t *testing.T) {
	cases := []struct {
		name   string
		q      float64
		sorted []float64
		want   float64
	}{
		{"empty", 0.5, nil, 0},
		{"single", 0.99, []float64{7}, 7},
		{"integer position below 2", 0.25, []float64{1, 2, 3, 4}, 1},
		{"integer position mid averages straddling ranks", 0.5, []float64{1, 2, 3, 4}, 2.5},
		{"integer position at n", 1, []float64{1, 2, 3, 4}, 4},
		{"fractional position rounds up", 0.6, []float64{1, 2, 3, 4}, 3},
		{"two values median", 0.5, []float64{10, 20}, 10},
		{"median of ten", 0.5, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 4.5},
		{"low quantile of ten", 0.01, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 0},
		{"high quantile of ten", 0.99, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := quantile(tc.q, tc.sorted); got != tc.want {
				t.Fatalf("quantile(%v, %v) = %v; want %v", tc.q, tc.sorted, got, tc.want)
			}
		})
	}
}

func TestSummary_WindowedQuantilesExactTotals(t *testing.T) {
	r := New()
	s := r.Summary("foo", WithWindow(10), WithQuantiles(0.5))

	// first ten observations get evicted by the next ten
	for i := 0; i < 10; i++ {
		s.Observe(float64(i * 1000))
	}
	for i := 0; i < 10; i++ {
		s.Observe(float64(i))
	}

	if got := s.Count(); got != 20 {
		t.Fatalf("Count() = %d; want 20 (exact, unbounded)", got)
	}
	if got := s.Sum(); got != 45045 {
		t.Fatalf("Sum() = %v; want 45045 (exact, unbounded)", got)
	}

	want := "# TYPE foo summary\n" +
		`foo{quantile="0.5"} 4.5` + "\n" +
		"foo_count 20\n" +
		"foo_sum 45045.0\n"
	if got := r.EmitString(); got != want {
		t.Fatalf("EmitString() = %q; want %q (median over the surviving window)", got, want)
	}
}

func TestSummary_RingOverwritesOldest(t *testing.T) {
	r := New()
	s := r.Summary("s", WithWindow(3), WithQuantiles(0.5))

	s.Observe(1)
	s.Observe(2)
	s.Observe(3)
	s.Observe(4) // overwrites 1

	samples, sum, count := s.snapshot(nil)
	if len(samples) != 3 {
		t.Fatalf("window size = %d; want 3", len(samples))
	}
	if count != 4 || sum != 10 {
		t.Fatalf("count, sum = %d, %v; want 4, 10", count, sum)
	}
	seen := map[float64]bool{}
	for _, v := range samples {
		seen[v] = true
	}
	if seen[1] || !seen[2] || !seen[3] || !seen[4] {
		t.Fatalf("window contents = %v; want {2,3,4}", samples)
	}
}

func TestSummary_PartialWindow(t *testing.T) {
	r := New()
	s := r.Summary("s", WithWindow(100), WithQuantiles(0.5))

	s.Observe(10)
	s.Observe(20)

	samples, _, _ := s.snapshot(nil)
	if len(samples) != 2 {
		t.Fatalf("window size = %d; want 2 (unfilled slots are not samples)", len(samples))
	}
}

func TestSummary_QuantilesAscendingInOutput(t *testing.T) {
	r := New()
	s := r.Summary("s", WithWindow(10), WithQuantiles(0.1, 0.5, 0.9))
	for i := 1; i <= 10; i++ {
		s.Observe(float64(i))
	}

	want := "# TYPE s summary\n" +
		`s{quantile="0.1"} 1.0` + "\n" +
		`s{quantile="0.5"} 5.5` + "\n" +
		`s{quantile="0.9"} 9.5` + "\n" +
		"s_count 10\n" +
		"s_sum 55.0\n"
	if got := r.EmitString(); got != want {
		t.Fatalf("EmitString() = %q; want %q", got, want)
	}
}

func TestSummary_DefaultConfiguration(t *testing.T) {
	r := New()
	s := r.Summary("s")
	if got := s.Quantiles(); len(got) != len(DefaultQuantiles) {
		t.Fatalf("default quantiles len = %d; want %d", len(got), len(DefaultQuantiles))
	}
	meta, _ := r.FamilyWithMeta("s")
	if meta.Window != DefaultWindow {
		t.Fatalf("default window = %d; want %d", meta.Window, DefaultWindow)
	}
}

func TestSummary_LabeledAddressing(t *testing.T) {
	r := New()
	s := r.Summary("s", WithWindow(10), WithQuantiles(0.5))
	op := Label{Name: "op", Value: "read"}

	s.Observe(3, op)
	s.Record(5, op)

	if got := s.Count(op); got != 2 {
		t.Fatalf("Count(op) = %d; want 2", got)
	}
	if got := s.Sum(op); got != 8 {
		t.Fatalf("Sum(op) = %v; want 8", got)
	}
	if got := s.Count(); got != 0 {
		t.Fatalf("root Count() = %d; want 0", got)
	}
}

func TestSummary_LabeledPathUsesSanitizer(t *testing.T) {
	r := New(WithSanitizer(Sanitize))
	s := r.Summary("s", WithWindow(4), WithQuantiles(0.5))

	s.Observe(3, Label{Name: "Op", Value: "read"})
	if got := s.Count(Label{Name: "op", Value: "read"}); got != 1 {
		t.Fatalf("Count(sanitized) = %d; want 1 (handle path sanitizes label names)", got)
	}
}

func TestSummary_ConcurrentObserve(t *testing.T) {
	r := New()
	s := r.Summary("s", WithWindow(16), WithQuantiles(0.5))

	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				s.Observe(2)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, uint64(goroutines*perGoroutine), s.Count())
	require.Equal(t, float64(goroutines*perGoroutine*2), s.Sum())
}
