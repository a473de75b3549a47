package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/scrimkit/scrimbot/internal/core"
	"github.com/scrimkit/scrimbot/internal/domain"
)

// Relocator moves members between voice rooms. Setup and teardown have
// deliberately different failure policies: a partially moved team is
// worse than an aborted match, but a stuck teardown is worse than a
// member left behind.
type Relocator struct {
	platform core.Platform
}

func NewRelocator(platform core.Platform) *Relocator {
	return &Relocator{platform: platform}
}

// MoveAll relocates every member concurrently and fails the whole batch
// on the first error. Used for team setup.
func (r *Relocator) MoveAll(ctx context.Context, guild domain.GuildID, members []domain.Participant, dest domain.RoomRef) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, m := range members {
		g.Go(func() error {
			return r.platform.MoveMember(ctx, guild, m.ID, dest.ID)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Debug().Str("module", "app.relocator").Str("guild", string(guild)).Str("room", string(dest.ID)).Int("members", len(members)).Msg("batch move done")
	return nil
}

// MoveEach relocates every member independently; failures are logged
// and skipped. Returns the number moved. Used on completion and expiry.
func (r *Relocator) MoveEach(ctx context.Context, guild domain.GuildID, members []domain.Participant, dest domain.RoomRef) int {
	moved := 0
	for _, m := range members {
		if err := r.platform.MoveMember(ctx, guild, m.ID, dest.ID); err != nil {
			log.Error().Err(err).Str("module", "app.relocator").Str("guild", string(guild)).Str("member", string(m.ID)).Str("room", string(dest.ID)).Msg("member move failed")
			continue
		}
		moved++
	}
	return moved
}
