package leaktest

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyNone records the goroutines running now and fails t at cleanup if
// any goroutine started afterwards is still alive.
func VerifyNone(t testing.TB, opts ...goleak.Option) {
	t.Helper()

	opts = append(opts, goleak.IgnoreCurrent())
	t.Cleanup(func() {
		goleak.VerifyNone(t, opts...)
	})
}

// CheckNoGoroutineLeak runs fn and fails t if it leaves goroutines behind.
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	ignore := goleak.IgnoreCurrent()
	fn()
	if err := goleak.Find(ignore); err != nil {
		t.Errorf("goroutine leak: %v", err)
	}
}
