package promreg

// Kind identifies one of the four supported metric kinds. The set is closed:
// a metric family is created with exactly one kind and keeps it for its lifetime.
type Kind uint8

const (
	KindCounter Kind = iota + 1
	KindGauge
	KindHistogram
	KindSummary
)

// String returns the exposition-format name of the kind, as written in
// "# TYPE" header lines.
func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	case KindHistogram:
		return "histogram"
	case KindSummary:
		return "summary"
	default:
		return "unknown"
	}
}
