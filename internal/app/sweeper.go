package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Expirer is the lifecycle controller's sweep entry point; the small
// interface keeps the dependency pointing app -> orch only at wiring time.
type Expirer interface {
	ExpireStale(ctx context.Context) int
}

// Sweeper periodically evicts matches that outlived their TTL.
type Sweeper struct {
	Interval time.Duration
	Target   Expirer
}

// Start runs the sweep loop until ctx is canceled.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		log.Info().Str("module", "app.sweeper").Dur("interval", s.Interval).Msg("expiry sweep started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Str("module", "app.sweeper").Msg("expiry sweep stopped")
				return
			case <-ticker.C:
				if n := s.Target.ExpireStale(ctx); n > 0 {
					log.Info().Str("module", "app.sweeper").Int("expired", n).Msg("sweep pass")
				}
			}
		}
	}()
}
