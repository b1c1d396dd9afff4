//go:build !integration

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store unavailable")

func fail() error    { return errStore }
func succeed() error { return nil }

func testBreaker(failures, successes int) *CircuitBreaker {
	return New(Config{
		FailureThreshold: failures,
		SuccessThreshold: successes,
		Timeout:          50 * time.Millisecond,
		Name:             "test",
	})
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := testBreaker(2, 1)
	ctx := context.Background()

	assert.Equal(t, errStore, cb.Execute(ctx, fail))
	assert.Equal(t, StateClosed, cb.State())

	assert.Equal(t, errStore, cb.Execute(ctx, fail))
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func() error {
		called = true
		return nil
	})
	assert.Equal(t, ErrCircuitOpen, err)
	assert.False(t, called)
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	tests := []struct {
		name      string
		trials    []func() error
		wantState State
	}{
		{name: "closes after enough successes", trials: []func() error{succeed, succeed}, wantState: StateClosed},
		{name: "stays half-open on partial recovery", trials: []func() error{succeed}, wantState: StateHalfOpen},
		{name: "reopens on failure", trials: []func() error{fail}, wantState: StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := testBreaker(2, 2)
			ctx := context.Background()
			_ = cb.Execute(ctx, fail)
			_ = cb.Execute(ctx, fail)
			require.True(t, cb.IsOpen())

			time.Sleep(60 * time.Millisecond)
			for _, trial := range tt.trials {
				_ = cb.Execute(ctx, trial)
			}
			assert.Equal(t, tt.wantState, cb.State())
		})
	}
}

func TestCircuitBreaker_IsFailureClassifier(t *testing.T) {
	errMissing := errors.New("not found")
	cb := New(Config{
		FailureThreshold: 1,
		Name:             "products",
		IsFailure:        func(err error) bool { return !errors.Is(err, errMissing) },
	})

	err := cb.Execute(context.Background(), func() error { return errMissing })
	assert.ErrorIs(t, err, errMissing)
	assert.Equal(t, StateClosed, cb.State(), "ignored errors do not trip the breaker")

	_ = cb.Execute(context.Background(), fail)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_CancelledContext(t *testing.T) {
	cb := testBreaker(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cb.Execute(ctx, fail)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 0, cb.GetStats().FailureCount)
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	var transitions []string
	cb := New(Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          10 * time.Millisecond,
		Name:             "tier_configs",
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})

	_ = cb.Execute(context.Background(), fail)
	time.Sleep(20 * time.Millisecond)
	_ = cb.Execute(context.Background(), succeed)

	assert.Equal(t, []string{
		"tier_configs:closed->open",
		"tier_configs:open->half-open",
		"tier_configs:half-open->closed",
	}, transitions)
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := testBreaker(1, 1)
	_ = cb.Execute(context.Background(), fail)
	require.True(t, cb.IsOpen())

	cb.Reset()
	assert.Equal(t, StateClosed, cb.State())
	assert.NoError(t, cb.Execute(context.Background(), succeed))
}

func TestCircuitBreaker_GetStats(t *testing.T) {
	cb := New(DefaultConfig())

	stats := cb.GetStats()
	assert.Equal(t, "circuit-breaker", stats.Name)
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)

	_ = cb.Execute(context.Background(), fail)
	stats = cb.GetStats()
	assert.Equal(t, 1, stats.FailureCount)
	assert.False(t, stats.LastFailure.IsZero())
}

func TestNew_FillsDefaults(t *testing.T) {
	cb := New(Config{})
	def := DefaultConfig()

	assert.Equal(t, def.FailureThreshold, cb.config.FailureThreshold)
	assert.Equal(t, def.SuccessThreshold, cb.config.SuccessThreshold)
	assert.Equal(t, def.Name, cb.Name())
}

func TestState_StringAndSeverity(t *testing.T) {
	tests := []struct {
		state    State
		str      string
		severity int
	}{
		{StateClosed, "closed", 0},
		{StateHalfOpen, "half-open", 1},
		{StateOpen, "open", 2},
		{State(42), "unknown", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.str, tt.state.String())
		assert.Equal(t, tt.severity, tt.state.Severity())
	}
}
