package latency

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/fx"

	"plume/internal/config"
)

var Module = fx.Module("latency",
	fx.Provide(NewSimulator),
)

// Simulator delays mock data-access calls by a random duration in [min, max]
type Simulator struct {
	min time.Duration
	max time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulator(cfg *config.Config) *Simulator {
	return New(cfg.Mock.MinDelay(), cfg.Mock.MaxDelay())
}

func New(min, max time.Duration) *Simulator {
	if max < min {
		max = min
	}
	return &Simulator{
		min: min,
		max: max,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// None returns a simulator that never waits
func None() *Simulator {
	return New(0, 0)
}

// Next picks the next delay
func (s *Simulator) Next() time.Duration {
	if s.max <= 0 {
		return 0
	}
	span := int64(s.max - s.min)
	if span <= 0 {
		return s.min
	}

	s.mu.Lock()
	n := s.rnd.Int63n(span + 1)
	s.mu.Unlock()

	return s.min + time.Duration(n)
}

// Wait sleeps for the next delay or until ctx is done
func (s *Simulator) Wait(ctx context.Context) error {
	d := s.Next()
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
