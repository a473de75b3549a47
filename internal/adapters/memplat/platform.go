// Package memplat is an in-memory chat platform: guilds, voice rooms and
// member locations held in process. It backs local development and tests;
// a real deployment swaps in a gateway-connected implementation of
// core.Platform.
package memplat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/scrimkit/scrimbot/internal/core"
	"github.com/scrimkit/scrimbot/internal/domain"
)

var (
	ErrUnknownGuild  = errors.New("unknown guild")
	ErrUnknownRoom   = errors.New("unknown room")
	ErrUnknownMember = errors.New("unknown member")
	ErrNoWaitingRoom = errors.New("waiting room not found, run !init")
)

type roomState struct {
	ref    domain.RoomRef
	kind   domain.RoomKind
	parent domain.RoomID
}

type memberState struct {
	participant domain.Participant
	room        domain.RoomID
}

type guildState struct {
	rooms   map[domain.RoomID]*roomState
	members map[domain.ParticipantID]*memberState
}

// Platform implements core.Platform over process-local state.
type Platform struct {
	waitingRoom domain.RoomName

	mu       sync.Mutex
	guilds   map[domain.GuildID]*guildState
	messages map[domain.ChannelID][]string
	seq      int
}

var _ core.Platform = (*Platform)(nil)

func New(waitingRoom domain.RoomName) *Platform {
	return &Platform{
		waitingRoom: waitingRoom,
		guilds:      make(map[domain.GuildID]*guildState),
		messages:    make(map[domain.ChannelID][]string),
	}
}

func (p *Platform) guild(id domain.GuildID) *guildState {
	g, ok := p.guilds[id]
	if !ok {
		g = &guildState{
			rooms:   make(map[domain.RoomID]*roomState),
			members: make(map[domain.ParticipantID]*memberState),
		}
		p.guilds[id] = g
	}
	return g
}

func (p *Platform) WaitingParticipants(ctx context.Context, guild domain.GuildID, excludes []string) (core.Roster, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	g := p.guild(guild)
	var waiting *roomState
	for _, r := range g.rooms {
		if r.kind == domain.RoomVoice && r.ref.Name == p.waitingRoom {
			waiting = r
			break
		}
	}
	if waiting == nil {
		return core.Roster{}, ErrNoWaitingRoom
	}
	skip := make(map[string]bool, len(excludes))
	for _, name := range excludes {
		skip[name] = true
	}
	roster := core.Roster{WaitingRoom: waiting.ref}
	for _, m := range g.members {
		if m.room != waiting.ref.ID || skip[m.participant.Username] {
			continue
		}
		roster.Participants = append(roster.Participants, m.participant)
	}
	return roster, nil
}

func (p *Platform) FindRoom(ctx context.Context, guild domain.GuildID, name domain.RoomName, parent domain.RoomID, kind domain.RoomKind) (domain.RoomRef, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.guilds[guild]
	if !ok {
		return domain.RoomRef{}, false, nil
	}
	for _, r := range g.rooms {
		if r.kind == kind && r.ref.Name == name && r.parent == parent {
			return r.ref, true, nil
		}
	}
	return domain.RoomRef{}, false, nil
}

func (p *Platform) CreateRoom(ctx context.Context, guild domain.GuildID, name domain.RoomName, parent domain.RoomID, kind domain.RoomKind, reason string) (domain.RoomRef, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	g := p.guild(guild)
	p.seq++
	ref := domain.RoomRef{ID: domain.RoomID(fmt.Sprintf("%s-%d", kind, p.seq)), Name: name}
	g.rooms[ref.ID] = &roomState{ref: ref, kind: kind, parent: parent}
	log.Debug().Str("module", "memplat").Str("guild", string(guild)).Str("room", string(ref.ID)).Str("reason", reason).Msg("room created")
	return ref, nil
}

func (p *Platform) DeleteRoom(ctx context.Context, guild domain.GuildID, room domain.RoomID, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.guilds[guild]
	if !ok {
		return ErrUnknownGuild
	}
	if _, ok := g.rooms[room]; !ok {
		return ErrUnknownRoom
	}
	delete(g.rooms, room)
	log.Debug().Str("module", "memplat").Str("guild", string(guild)).Str("room", string(room)).Str("reason", reason).Msg("room deleted")
	return nil
}

func (p *Platform) MoveMember(ctx context.Context, guild domain.GuildID, member domain.ParticipantID, dest domain.RoomID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.guilds[guild]
	if !ok {
		return ErrUnknownGuild
	}
	if _, ok := g.rooms[dest]; !ok {
		return ErrUnknownRoom
	}
	m, ok := g.members[member]
	if !ok {
		return ErrUnknownMember
	}
	m.room = dest
	return nil
}

func (p *Platform) SendMessage(ctx context.Context, channel domain.ChannelID, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[channel] = append(p.messages[channel], text)
	return nil
}

// Join places a member into the guild's waiting room, creating the
// membership if needed. Used by the chat gateway for presence.
func (p *Platform) Join(guild domain.GuildID, participant domain.Participant) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	g := p.guild(guild)
	var waiting *roomState
	for _, r := range g.rooms {
		if r.kind == domain.RoomVoice && r.ref.Name == p.waitingRoom {
			waiting = r
			break
		}
	}
	if waiting == nil {
		return ErrNoWaitingRoom
	}
	g.members[participant.ID] = &memberState{participant: participant, room: waiting.ref.ID}
	return nil
}

// Leave removes a member from the guild entirely.
func (p *Platform) Leave(guild domain.GuildID, member domain.ParticipantID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.guilds[guild]; ok {
		delete(g.members, member)
	}
}

// RoomOf reports which room a member currently occupies.
func (p *Platform) RoomOf(guild domain.GuildID, member domain.ParticipantID) (domain.RoomID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.guilds[guild]
	if !ok {
		return "", false
	}
	m, ok := g.members[member]
	if !ok {
		return "", false
	}
	return m.room, true
}

// MembersIn lists the members currently in a room.
func (p *Platform) MembersIn(guild domain.GuildID, room domain.RoomID) []domain.Participant {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.guilds[guild]
	if !ok {
		return nil
	}
	var out []domain.Participant
	for _, m := range g.members {
		if m.room == room {
			out = append(out, m.participant)
		}
	}
	return out
}

// Messages returns everything sent to a channel, oldest first.
func (p *Platform) Messages(channel domain.ChannelID) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.messages[channel]...)
}

// RoomCount reports how many rooms of the kind exist in the guild.
func (p *Platform) RoomCount(guild domain.GuildID, kind domain.RoomKind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.guilds[guild]
	if !ok {
		return 0
	}
	n := 0
	for _, r := range g.rooms {
		if r.kind == kind {
			n++
		}
	}
	return n
}
