package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Checkout tracks how checkout attempts end. Counters only; there is
// no metrics endpoint, the orchestrator logs a snapshot per attempt.
type Checkout struct {
	AttemptsStarted   Counter
	Completed         Counter
	ValidationFailed  Counter
	GatewayAbandoned  Counter
	FinalizeFailed    Counter
	MockGatewayOrders Counter
}

// Snapshot returns the current counter values keyed by name.
func (m *Checkout) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"attempts_started":    m.AttemptsStarted.Load(),
		"completed":           m.Completed.Load(),
		"validation_failed":   m.ValidationFailed.Load(),
		"gateway_abandoned":   m.GatewayAbandoned.Load(),
		"finalize_failed":     m.FinalizeFailed.Load(),
		"mock_gateway_orders": m.MockGatewayOrders.Load(),
	}
}
