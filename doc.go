/*
Package promreg provides a small, concurrency-safe in-memory metric registry
for Go with a Prometheus text exposition encoder.

# Overview

The library is organized around three pieces:

1. Registry: creation and lifecycle management of metric instances (Counter,
Gauge, Histogram, Summary). A registry must be safe for concurrent use by
multiple goroutines, create instances lazily, and deduplicate by a stable key
(metric name plus ordered label set). The same (name, labels, kind) request
always returns the same instance; a name reused with a conflicting kind,
conflicting help text, or a conflicting histogram bucket set panics
immediately instead of proceeding silently.

	r := promreg.New()
	c := r.Counter("requests_total", promreg.WithHelp("HTTP requests"))
	c.Inc()
	c.Add(2, promreg.Label{Name: "method", Value: "get"})

2. Instruments: value mutation happens directly on the returned handles with
no registry involvement on the hot path. Counter and Gauge update lock-free;
Histogram buckets observations into fixed ascending boundaries (terminal +Inf
implicit, cumulative totals computed at emission time); Summary keeps exact
count/sum plus a bounded ring of recent raw samples for windowed quantile
estimation. Labeled variants of one name are navigated with With:

	c.With(promreg.Label{Name: "method", Value: "put"}).Inc()

3. Encoder: Emit and EmitString walk every family once, write one HELP/TYPE
header pair per metric name followed by every value line, and reuse an
internal growable buffer across emissions so a steady-state scrape allocates
nothing. BufferCap exposes the buffer's capacity, ResetBuffer drops it to
zero. WritePrometheus streams the same bytes to an io.Writer:

	http.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
	    _, _ = r.WritePrometheus(w)
	})

# Consistency model

Creation, lookup and unregistration are guarded by registry and family locks;
emission locks each instance only transiently while copying its current
value. A full export is therefore a per-series consistent snapshot, not an
atomic snapshot across all metrics: concurrent writers may land before or
after a given series' read during one emission pass.

Unregister removes an instance from future lookups and emissions only.
Handles already held by callers stay valid; re-creating the same
(name, labels) afterwards yields a fresh instance with zeroed state.

# Facade binding

Provider is the vendor-neutral front-end contract for code that should not
depend on this package's concrete types; Registry.Provider() binds a registry
to it and NewNoopProvider() discards everything. Inspector exposes read-only
family metadata snapshots for admin and debug surfaces.

# Names

Metric and label names must consist of lowercase ascii letters, digits, '_'
and ':'. Sanitize folds arbitrary text into that set (identity on valid
input) and can be installed on a registry with WithSanitizer to normalize
names on the way in.

# Build and test

- Run unit tests:

	go test ./...

- Run with the race detector (enables stricter invariant behavior):

	go test -race ./...

- Enable debug build tag (debug invariants enabled):

	go test -tags=debug ./...

# Notes

- Output grows by insertion order: families emit in creation order and
instances within a family in creation order, with label pairs reproduced
verbatim in their stored order. Synthetic "le" and "quantile" labels are
always appended last.

- Emissions share one internal buffer and serialize on it; concurrent
emissions that must not block each other should use EmitTo with independent
buffers.
*/
package promreg
