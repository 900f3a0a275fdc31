package jobs

import (
	"time"

	"github.com/rs/zerolog/log"

	"mediaforge/internal/store"
)

// Reaper periodically sweeps aged artifacts out of the store. The retention
// threshold equals the tick interval, so an artifact becomes eligible once
// strictly older than one interval and is removed at the next tick; actual
// lifetime falls in (interval, 2x interval] depending on tick phase. The
// reaper knows nothing about job bookkeeping; a deleted artifact simply
// surfaces as a 404 on download.
type Reaper struct {
	store    *store.Store
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewReaper creates a reaper over st with the given tick interval.
func NewReaper(st *store.Store, interval time.Duration) *Reaper {
	return &Reaper{
		store:    st,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the periodic sweep loop.
func (r *Reaper) Start() {
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.sweep()
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop halts the loop and runs one final synchronous sweep.
func (r *Reaper) Stop() {
	close(r.stop)
	<-r.done
	r.sweep()
}

func (r *Reaper) sweep() {
	removed := r.store.Sweep(r.interval)
	files, bytes := r.store.Usage()
	log.Info().Int("removed", removed).Int("files", files).Int64("bytes", bytes).
		Msg("artifact sweep finished")
}
