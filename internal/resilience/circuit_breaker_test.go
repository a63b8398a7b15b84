package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store unavailable")

func newTestBreaker(clock *time.Time) *CircuitBreaker {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		RecoveryTimeout:  time.Second,
		SuccessThreshold: 1,
	})
	cb.now = func() time.Time { return *clock }
	return cb
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	clock := time.Unix(0, 0)
	cb := newTestBreaker(&clock)
	fail := func() error { return errStore }

	assert.ErrorIs(t, cb.Call(fail), errStore)
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Call(fail), errStore)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
	assert.Equal(t, int64(1), cb.GetStats()["rejected"])
}

func TestCircuitBreaker_Recovery(t *testing.T) {
	clock := time.Unix(0, 0)
	cb := newTestBreaker(&clock)
	fail := func() error { return errStore }
	ok := func() error { return nil }

	_ = cb.Call(fail)
	_ = cb.Call(fail)
	require.Equal(t, StateOpen, cb.State())

	// A failed trial call reopens immediately.
	clock = clock.Add(2 * time.Second)
	assert.ErrorIs(t, cb.Call(fail), errStore)
	assert.Equal(t, StateOpen, cb.State())

	clock = clock.Add(2 * time.Second)
	assert.NoError(t, cb.Call(ok))
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 0, cb.GetStats()["failures"])
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	clock := time.Unix(0, 0)
	cb := newTestBreaker(&clock)

	_ = cb.Call(func() error { return errStore })
	assert.Equal(t, 1, cb.GetStats()["failures"])
	assert.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, 0, cb.GetStats()["failures"])

	_ = cb.Call(func() error { return errStore })
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_Reset(t *testing.T) {
	clock := time.Unix(0, 0)
	cb := newTestBreaker(&clock)

	_ = cb.Call(func() error { return errStore })
	_ = cb.Call(func() error { return errStore })
	require.Equal(t, StateOpen, cb.State())

	cb.Reset()
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, "closed", cb.GetStats()["state"])
}

func TestNewCircuitBreaker_Defaults(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})
	assert.Equal(t, 5, cb.config.FailureThreshold)
	assert.Equal(t, 30*time.Second, cb.config.RecoveryTimeout)
	assert.Equal(t, 1, cb.config.SuccessThreshold)
	assert.Equal(t, "half_open", StateHalfOpen.String())
}
