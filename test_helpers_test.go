package promreg

import (
	"errors"
	"testing"
)

// test helper: assert fn panics with an error wrapping target.
// Placed in a _test.go file so it is test-only and not part of the public API.
func mustPanicWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v, got none", target)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic, got %T: %v", r, r)
		}
		if !errors.Is(err, target) {
			t.Fatalf("panic error = %v; want wrapping %v", err, target)
		}
	}()
	fn()
}
