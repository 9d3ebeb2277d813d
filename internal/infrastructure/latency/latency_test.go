package latency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNextStaysInRange(t *testing.T) {
	s := New(300*time.Millisecond, 800*time.Millisecond)
	for i := 0; i < 1000; i++ {
		d := s.Next()
		assert.GreaterOrEqual(t, d, 300*time.Millisecond)
		assert.LessOrEqual(t, d, 800*time.Millisecond)
	}
}

func TestFixedDelay(t *testing.T) {
	s := New(5*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, s.Next())
}

func TestInvertedRangeUsesMin(t *testing.T) {
	s := New(10*time.Millisecond, time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, s.Next())
}

func TestNoneDoesNotWait(t *testing.T) {
	s := None()
	start := time.Now()
	require.NoError(t, s.Wait(context.Background()))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestWaitHonoursCancellation(t *testing.T) {
	s := New(time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitSleeps(t *testing.T) {
	s := New(20*time.Millisecond, 20*time.Millisecond)
	start := time.Now()
	require.NoError(t, s.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
