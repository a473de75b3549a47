package core

import (
	"context"
	"time"

	"github.com/scrimkit/scrimbot/internal/domain"
)

// Roster is the waiting-room population at the moment of a fetch.
type Roster struct {
	Participants []domain.Participant
	WaitingRoom  domain.RoomRef
}

// Platform is what a chat-platform adapter must provide to the engine.
// Every method may suspend on network I/O; callers must not assume
// registry state is unchanged across a call.
type Platform interface {
	// WaitingParticipants returns the members currently in the guild's
	// waiting voice room, minus the excluded usernames.
	WaitingParticipants(ctx context.Context, guild domain.GuildID, excludes []string) (Roster, error)

	// FindRoom looks a room up by name, parent and kind. parent is empty
	// for top-level rooms and categories.
	FindRoom(ctx context.Context, guild domain.GuildID, name domain.RoomName, parent domain.RoomID, kind domain.RoomKind) (domain.RoomRef, bool, error)

	// CreateRoom creates a platform-visible room. reason is recorded in
	// the platform's audit log.
	CreateRoom(ctx context.Context, guild domain.GuildID, name domain.RoomName, parent domain.RoomID, kind domain.RoomKind, reason string) (domain.RoomRef, error)

	// DeleteRoom removes a bot-created room. reason as for CreateRoom.
	DeleteRoom(ctx context.Context, guild domain.GuildID, room domain.RoomID, reason string) error

	// MoveMember relocates one member into dest.
	MoveMember(ctx context.Context, guild domain.GuildID, member domain.ParticipantID, dest domain.RoomID) error

	// SendMessage posts text to a text channel.
	SendMessage(ctx context.Context, channel domain.ChannelID, text string) error
}

// Clock abstracts wall-clock reads so match age is testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// IDSource produces globally unique match identifiers.
type IDSource func() string
