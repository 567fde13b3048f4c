package promreg

import "errors"

const Namespace = "promreg"

var (
	ErrKindConflict = errors.New(
		Namespace + ": metric name is already registered with a different kind",
	)
	ErrHelpConflict = errors.New(
		Namespace + ": metric name is already registered with different help text",
	)
	ErrBucketsConflict = errors.New(
		Namespace + ": histogram name is already registered with a different bucket set",
	)
	ErrNegativeDelta = errors.New(Namespace + ": counter delta must be non-negative")
	ErrInvalidName   = errors.New(Namespace + ": invalid metric or label name")
	ErrInvalidBuckets = errors.New(
		Namespace + ": histogram buckets must be finite and strictly ascending",
	)
	ErrInvalidQuantiles = errors.New(
		Namespace + ": summary quantiles must be in (0, 1] and strictly ascending",
	)
	ErrInvalidWindow    = errors.New(Namespace + ": summary window capacity must be positive")
	ErrDuplicateLabel   = errors.New(Namespace + ": duplicate label name in label set")
	ErrForeignHandle    = errors.New(Namespace + ": handle does not belong to this registry")
)
