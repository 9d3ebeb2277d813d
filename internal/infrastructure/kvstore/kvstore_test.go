package kvstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get after set", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, "k", "v", 0))

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("missing key", func(t *testing.T) {
		s := NewMemoryStore()
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrMiss)
	})

	t.Run("expired entries miss", func(t *testing.T) {
		s := NewMemoryStore()
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }

		require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

		now = now.Add(59 * time.Second)
		_, err := s.Get(ctx, "k")
		require.NoError(t, err)

		now = now.Add(time.Second)
		_, err = s.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrMiss)
	})

	t.Run("fresh set survives a racing expired read", func(t *testing.T) {
		s := NewMemoryStore()
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }
		require.NoError(t, s.Set(ctx, "k", "old", time.Minute))
		now = now.Add(time.Minute)

		// the reader saw the expired entry, then a writer replaced it
		// before the reader took the write lock
		s.now = func() time.Time {
			s.now = func() time.Time { return now }
			s.entries["k"] = memoryEntry{value: "new", expiresAt: now.Add(time.Minute)}
			return now
		}
		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrMiss)

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "new", got)
	})

	t.Run("set sweeps expired entries", func(t *testing.T) {
		s := NewMemoryStore()
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }

		require.NoError(t, s.Set(ctx, "a", "1", time.Minute))
		require.NoError(t, s.Set(ctx, "b", "2", time.Hour))
		require.NoError(t, s.Set(ctx, "c", "3", 0))

		now = now.Add(2 * time.Minute)
		require.NoError(t, s.Set(ctx, "d", "4", time.Minute))

		assert.Len(t, s.entries, 3)
		assert.NotContains(t, s.entries, "a")
		assert.Contains(t, s.entries, "b")
		assert.Contains(t, s.entries, "c")
	})

	t.Run("concurrent writers", func(t *testing.T) {
		s := NewMemoryStore()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Set(ctx, "shared", "x", 0)
				_, _ = s.Get(ctx, "shared")
			}()
		}
		wg.Wait()

		got, err := s.Get(ctx, "shared")
		require.NoError(t, err)
		assert.Equal(t, "x", got)
	})
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	type payload struct {
		Step string `json:"step"`
	}

	require.NoError(t, SetJSON(ctx, s, "p", payload{Step: "verify"}, 0))

	var got payload
	require.NoError(t, GetJSON(ctx, s, "p", &got))
	assert.Equal(t, "verify", got.Step)

	require.NoError(t, s.Set(ctx, "bad", "{", 0))
	assert.Error(t, GetJSON(ctx, s, "bad", &got))

	assert.ErrorIs(t, GetJSON(ctx, s, "absent", &got), ErrMiss)
}

func TestNewStoreFallsBackToMemory(t *testing.T) {
	s := NewStore(nil, zap.NewNop())
	_, ok := s.(*MemoryStore)
	assert.True(t, ok)
}
