package orch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/scrimkit/scrimbot/internal/domain"
)

// Complete moves a match out of Active. The registry entry goes first
// and atomically; everything after is best-effort, so a failed move or
// room delete can never leave the match stuck in the registry.
func (c *Controller) Complete(ctx context.Context, id domain.MatchID) (*domain.Match, error) {
	m, ok := c.Registry.Take(id)
	if !ok {
		return nil, domain.ErrUnknownMatch
	}
	c.teardown(ctx, m, "match complete")
	return m, nil
}

// ExpireStale removes every match older than the TTL. Notification and
// eviction are attempted but not required; the entry is already gone by
// the time they run.
func (c *Controller) ExpireStale(ctx context.Context) int {
	cutoff := c.Clock.Now().Add(-c.Settings.MatchTTL)
	expired := 0
	for _, stale := range c.Registry.StaleBefore(cutoff) {
		m, ok := c.Registry.Take(stale.ID)
		if !ok {
			// Completed between the scan and now.
			continue
		}
		notice := fmt.Sprintf("Match %s has been running too long and has expired. Players are being returned to the waiting room.", m.ID)
		if err := c.Platform.SendMessage(ctx, m.Origin, notice); err != nil {
			log.Error().Err(err).Str("module", "orch").Str("match", string(m.ID)).Msg("expiry notice failed")
		}
		c.teardown(ctx, m, "match expired")
		expired++
	}
	return expired
}

// teardown returns everyone to the waiting room and deletes the team
// rooms. Per-member failures are logged by the relocator and skipped.
func (c *Controller) teardown(ctx context.Context, m *domain.Match, reason string) {
	players := m.Players()
	moved := c.Movers.MoveEach(ctx, m.Guild, players, m.WaitingRoom)
	c.Rooms.Teardown(ctx, m.Guild, m.Attackers.Room, reason)
	c.Rooms.Teardown(ctx, m.Guild, m.Defenders.Room, reason)
	log.Info().Str("module", "orch").Str("match", string(m.ID)).Str("reason", reason).Int("returned", moved).Int("players", len(players)).Msg("match torn down")
}
