package app

import (
	"context"
	"log"
	"time"

	"github.com/snackpos/snackdash/internal/store"
)

const (
	defaultPollInterval = 15 * time.Second
	maxBackoff          = 2 * time.Minute
)

// StartPoller launches a background goroutine that re-fetches the three
// collections at a fixed cadence so the dashboard tracks sales recorded at
// other terminals. It returns immediately. Consecutive failures back off
// exponentially up to maxBackoff.
func StartPoller(ctx context.Context, st *store.Store, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			if err := st.FetchAll(ctx); err != nil {
				failures++
				log.Printf("poll failed (%d consecutive): %v", failures, err)
			} else {
				failures = 0
			}

			wait := calculateBackoff(failures, interval)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff. Zero failures returns the base interval.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
