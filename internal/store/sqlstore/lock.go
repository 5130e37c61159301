package sqlstore

import (
	"context"
	"fmt"
	"time"

	"names_demo/internal/domain"
)

// Observer receives store instrumentation. metrics.Metrics implements it.
type Observer interface {
	ObserveLockWait(d time.Duration)
	StoreBusy()
	QueryFailed()
}

type nopObserver struct{}

func (nopObserver) ObserveLockWait(time.Duration) {}
func (nopObserver) StoreBusy()                    {}
func (nopObserver) QueryFailed()                  {}

// acquire takes the connection lock, waiting at most timeout when it is
// positive. The returned release func must be called exactly once.
func (s *Store) acquire(ctx context.Context, timeout time.Duration) (func(), error) {
	start := time.Now()
	waitCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	err := s.sem.Acquire(waitCtx, 1)
	s.obs.ObserveLockWait(time.Since(start))
	if err != nil {
		s.obs.StoreBusy()
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreBusy, err)
	}

	held := s.active.Add(1)
	for {
		peak := s.peak.Load()
		if held <= peak || s.peak.CompareAndSwap(peak, held) {
			break
		}
	}
	return func() {
		s.active.Add(-1)
		s.sem.Release(1)
	}, nil
}

// ActiveHolders reports how many callers currently hold the lock.
func (s *Store) ActiveHolders() int32 {
	return s.active.Load()
}

// PeakHolders reports the highest number of simultaneous lock holders seen.
func (s *Store) PeakHolders() int32 {
	return s.peak.Load()
}
