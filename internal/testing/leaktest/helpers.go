// Package leaktest detects goroutines left running by a test.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 10 * time.Millisecond

	// DefaultTimeout bounds how long Check waits for goroutines to drain
	DefaultTimeout = 2 * time.Second
)

// GoroutineChecker records a goroutine baseline and later asserts the count
// returned to within tolerance of it.
type GoroutineChecker struct {
	t       testing.TB
	before  int
	timeout time.Duration
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	return &GoroutineChecker{t: t, before: settledCount(), timeout: DefaultTimeout}
}

// WithTimeout overrides how long Check polls before failing
func (g *GoroutineChecker) WithTimeout(d time.Duration) *GoroutineChecker {
	g.timeout = d
	return g
}

// Check polls until at most tolerance extra goroutines remain, failing the
// test if the timeout passes first.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	limit := g.before + tolerance
	deadline := time.Now().Add(g.timeout)
	after := runtime.NumGoroutine()
	for after > limit && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(pollInterval)
		after = runtime.NumGoroutine()
	}

	if after > limit {
		g.t.Errorf("goroutine leak: before=%d after=%d leaked=%d tolerance=%d",
			g.before, after, after-g.before, tolerance)
	}
}

// VerifyNone checks for leaked goroutines when the test finishes. Register it
// first so cleanups registered later, such as pool shutdowns, run before it.
func VerifyNone(t testing.TB) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	t.Cleanup(func() { checker.Check(0) })
}

// CheckNoGoroutineLeak runs fn and asserts it left nothing running
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

func settledCount() int {
	runtime.Gosched()
	time.Sleep(settleDelay)
	return runtime.NumGoroutine()
}
