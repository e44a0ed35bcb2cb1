package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/bookreview-service/pkg/circuit_breaker"
	"github.com/stretchr/testify/require"
)

var (
	successfulService = func() error { return nil }
	errService        = errors.New("service error")
	failingService    = func() error { return errService }
)

func Test_circuitBreaker_Call(t *testing.T) {
	t.Parallel()
	cb := circuit_breaker.New(10, 50*time.Millisecond, 0.3, 2)

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(successfulService))
	}
	require.Equal(t, circuit_breaker.Closed, cb.State())

	// 3 failures out of a window of 10 reach the 0.3 threshold
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Call(failingService), errService)
	}
	require.Equal(t, circuit_breaker.Open, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	require.ErrorIs(t, err, circuit_breaker.ErrOpenCB)
	require.False(t, called)

	time.Sleep(80 * time.Millisecond)
	require.NoError(t, cb.Call(successfulService))
	require.Equal(t, circuit_breaker.HalfOpen, cb.State())
	require.NoError(t, cb.Call(successfulService))
	require.Equal(t, circuit_breaker.Closed, cb.State())
}

func Test_circuitBreaker_HalfOpenFailure(t *testing.T) {
	t.Parallel()
	cb := circuit_breaker.New(1, 20*time.Millisecond, 1, 1)

	require.Error(t, cb.Call(failingService))
	require.Equal(t, circuit_breaker.Open, cb.State())

	time.Sleep(40 * time.Millisecond)
	require.ErrorIs(t, cb.Call(failingService), errService)
	require.Equal(t, circuit_breaker.Open, cb.State())

	cb.Reset()
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.Equal(t, "CLOSED", cb.State().String())
}
