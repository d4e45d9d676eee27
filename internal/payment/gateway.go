// Package payment simulates a card payment gateway.  There is no real
// processor behind it: each charge waits a fixed latency and then succeeds
// with a configurable probability.  Callers treat it like a remote service
// so swapping in a real gateway later only touches this package.
package payment

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrDeclined is returned when the simulated processor rejects a charge.
// The payment handler persists the failed status and maps this to 402.
var ErrDeclined = errors.New("payment declined")

// Gateway is the charge interface the payment handler depends on.
type Gateway interface {
	// Charge attempts to capture the given amount for a booking.  The
	// reference is the booking code, passed along the way a gateway
	// would receive an order reference.  It returns ErrDeclined when the
	// charge is rejected and the context error when ctx ends first.
	Charge(ctx context.Context, amountCents uint32, reference string) error
}

// MockGateway implements Gateway with latency and a success-rate dice
// roll.  A re-invoked charge re-rolls: there is deliberately no
// idempotency key, matching the behavior this simulates.
type MockGateway struct {
	delay       time.Duration
	successRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockGateway builds a gateway with the given latency and success
// probability (clamped to [0,1]), seeded from the current time.
func NewMockGateway(delay time.Duration, successRate float64) *MockGateway {
	return newMockGateway(delay, successRate, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// newMockGateway allows tests to inject a deterministic source.
func newMockGateway(delay time.Duration, successRate float64, rng *rand.Rand) *MockGateway {
	if successRate < 0 {
		successRate = 0
	}
	if successRate > 1 {
		successRate = 1
	}
	return &MockGateway{delay: delay, successRate: successRate, rng: rng}
}

// Charge blocks for the configured latency, honoring context
// cancellation, then rolls for success.
func (g *MockGateway) Charge(ctx context.Context, amountCents uint32, reference string) error {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	g.mu.Lock()
	roll := g.rng.Float64()
	g.mu.Unlock()
	if roll >= g.successRate {
		return ErrDeclined
	}
	return nil
}
