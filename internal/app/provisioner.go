package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/scrimkit/scrimbot/internal/core"
	"github.com/scrimkit/scrimbot/internal/domain"
)

const provisionReason = "scrimbot match setup"

// Provisioner owns create-if-absent semantics for the rooms the bot
// manages. Check-then-create is not atomic against the platform, so
// each guild's provisioning runs under its own lock.
type Provisioner struct {
	platform core.Platform

	mu     sync.Mutex
	guilds map[domain.GuildID]*sync.Mutex
}

func NewProvisioner(platform core.Platform) *Provisioner {
	return &Provisioner{
		platform: platform,
		guilds:   make(map[domain.GuildID]*sync.Mutex),
	}
}

func (p *Provisioner) lockFor(guild domain.GuildID) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.guilds[guild]
	if !ok {
		l = &sync.Mutex{}
		p.guilds[guild] = l
	}
	return l
}

// EnsureCategory returns the guild's category with the given name,
// creating it when absent.
func (p *Provisioner) EnsureCategory(ctx context.Context, guild domain.GuildID, name domain.RoomName) (domain.RoomRef, error) {
	return p.ensure(ctx, guild, name, "", domain.RoomCategory)
}

// EnsureRoom returns the voice room with the given name under parent,
// creating it when absent.
func (p *Provisioner) EnsureRoom(ctx context.Context, guild domain.GuildID, name domain.RoomName, parent domain.RoomID) (domain.RoomRef, error) {
	return p.ensure(ctx, guild, name, parent, domain.RoomVoice)
}

func (p *Provisioner) ensure(ctx context.Context, guild domain.GuildID, name domain.RoomName, parent domain.RoomID, kind domain.RoomKind) (domain.RoomRef, error) {
	l := p.lockFor(guild)
	l.Lock()
	defer l.Unlock()

	ref, ok, err := p.platform.FindRoom(ctx, guild, name, parent, kind)
	if err != nil {
		return domain.RoomRef{}, fmt.Errorf("looking up %s %q: %w", kind, name, err)
	}
	if ok {
		return ref, nil
	}
	ref, err = p.platform.CreateRoom(ctx, guild, name, parent, kind, provisionReason)
	if err != nil {
		return domain.RoomRef{}, fmt.Errorf("creating %s %q: %w", kind, name, err)
	}
	log.Info().Str("module", "app.provisioner").Str("guild", string(guild)).Str("kind", string(kind)).Str("name", string(name)).Str("room", string(ref.ID)).Msg("room provisioned")
	return ref, nil
}

// Teardown deletes a bot-created room, best-effort.
func (p *Provisioner) Teardown(ctx context.Context, guild domain.GuildID, room domain.RoomRef, reason string) {
	if err := p.platform.DeleteRoom(ctx, guild, room.ID, reason); err != nil {
		log.Error().Err(err).Str("module", "app.provisioner").Str("guild", string(guild)).Str("room", string(room.ID)).Msg("room delete failed")
		return
	}
	log.Info().Str("module", "app.provisioner").Str("guild", string(guild)).Str("room", string(room.ID)).Msg("room deleted")
}
