package orch

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/scrimkit/scrimbot/internal/core"
	"github.com/scrimkit/scrimbot/internal/domain"
)

// Summary is the Forming result handed back to the command layer.
type Summary struct {
	Match          *domain.Match
	Extras         []domain.Participant
	AnnounceExtras bool
}

// Text renders the announcement: rosters, map, match id, completion
// instructions, and the extras line when announcing is enabled.
func (s *Summary) Text() string {
	m := s.Match
	var b strings.Builder
	fmt.Fprintf(&b, "Attackers (%s): %s", m.Attackers.Name, strings.Join(m.Attackers.Usernames(), ", "))
	fmt.Fprintf(&b, "\nDefenders (%s): %s", m.Defenders.Name, strings.Join(m.Defenders.Usernames(), ", "))
	fmt.Fprintf(&b, "\nMap: %s", m.Map)
	fmt.Fprintf(&b, "\nMatchID: %s", m.ID)
	fmt.Fprintf(&b, "\nWhen the match is complete, type `!complete --id=%s`", m.ID)
	if s.AnnounceExtras && len(s.Extras) > 0 {
		names := make([]string, 0, len(s.Extras))
		for _, p := range s.Extras {
			names = append(names, p.Username)
		}
		fmt.Fprintf(&b, "\nExtras: %s", strings.Join(names, ", "))
	}
	return b.String()
}

// StartMatch runs the Forming workflow: fetch the waiting room, partition,
// pick a map, provision rooms, relocate both teams, then register the
// match. Any failure before the registry insert aborts with nothing
// committed; rooms already ensured are reusable and left alone.
func (c *Controller) StartMatch(ctx context.Context, guild domain.GuildID, origin domain.ChannelID, author domain.ParticipantID, game string, excludes []string) (*Summary, error) {
	if !c.Maps.Supports(game) {
		return nil, core.ErrUnsupportedGame
	}

	roster, err := c.Platform.WaitingParticipants(ctx, guild, excludes)
	if err != nil {
		return nil, fmt.Errorf("fetching waiting room: %w", err)
	}
	eligible := make([]domain.Participant, 0, len(roster.Participants))
	for _, p := range roster.Participants {
		if p.Muted {
			continue
		}
		eligible = append(eligible, p)
	}

	var (
		teams            core.Teams
		mapName          string
		nameA, nameB     string
		partErr, pickErr error
	)
	c.draw(func(rng *rand.Rand) {
		teams, partErr = core.Partition(eligible, c.Settings.TeamSize, rng)
		if partErr != nil {
			return
		}
		mapName, pickErr = c.Maps.Pick(game, rng)
		if pickErr != nil {
			return
		}
		nameA, nameB = core.TeamNamePair(rng)
	})
	if partErr != nil {
		return nil, partErr
	}
	if pickErr != nil {
		return nil, pickErr
	}

	category, err := c.Rooms.EnsureCategory(ctx, guild, c.Settings.CategoryName)
	if err != nil {
		return nil, err
	}
	roomA, err := c.Rooms.EnsureRoom(ctx, guild, domain.RoomName(nameA), category.ID)
	if err != nil {
		return nil, err
	}
	roomB, err := c.Rooms.EnsureRoom(ctx, guild, domain.RoomName(nameB), category.ID)
	if err != nil {
		return nil, err
	}

	// Team setup is all-or-nothing: a partially moved team is worse
	// than an aborted match.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Movers.MoveAll(gctx, guild, teams.A, roomA) })
	g.Go(func() error { return c.Movers.MoveAll(gctx, guild, teams.B, roomB) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("moving players to team rooms: %w", err)
	}

	m := &domain.Match{
		ID:          domain.MatchID(c.NewID()),
		Guild:       guild,
		Game:        game,
		Map:         mapName,
		CreatedAt:   c.Clock.Now(),
		Attackers:   domain.Team{Name: nameA, Room: roomA, Players: teams.A},
		Defenders:   domain.Team{Name: nameB, Room: roomB, Players: teams.B},
		WaitingRoom: roster.WaitingRoom,
		Origin:      origin,
		CreatedBy:   author,
	}
	if err := c.Registry.Insert(m); err != nil {
		return nil, err
	}
	log.Info().Str("module", "orch").Str("match", string(m.ID)).Str("guild", string(guild)).Str("game", game).Str("map", mapName).Int("extras", len(teams.Extras)).Msg("match active")

	return &Summary{Match: m, Extras: teams.Extras, AnnounceExtras: c.Settings.AnnounceExtras}, nil
}

// Init provisions the managed category and the waiting voice room.
func (c *Controller) Init(ctx context.Context, guild domain.GuildID) (category, waiting domain.RoomRef, err error) {
	category, err = c.Rooms.EnsureCategory(ctx, guild, c.Settings.CategoryName)
	if err != nil {
		return domain.RoomRef{}, domain.RoomRef{}, err
	}
	waiting, err = c.Rooms.EnsureRoom(ctx, guild, c.Settings.WaitingRoom, category.ID)
	if err != nil {
		return domain.RoomRef{}, domain.RoomRef{}, err
	}
	return category, waiting, nil
}
