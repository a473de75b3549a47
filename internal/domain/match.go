package domain

import (
	"errors"
	"time"
)

var (
	ErrDuplicateMatch = errors.New("match id already registered")
	ErrUnknownMatch   = errors.New("unknown match id")
)

type MatchID string

// Team is one named roster of a match. Membership is a set; order is not
// meaningful.
type Team struct {
	Name    string        `json:"name"`
	Room    RoomRef       `json:"room"`
	Players []Participant `json:"players"`
}

func (t Team) Usernames() []string {
	out := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		out = append(out, p.Username)
	}
	return out
}

// Match is one scrim instance from team formation through completion or
// expiry. Immutable once registered; the registry only ever deletes it.
type Match struct {
	ID        MatchID   `json:"id"`
	Guild     GuildID   `json:"guild"`
	Game      string    `json:"game"`
	Map       string    `json:"map"`
	CreatedAt time.Time `json:"created_at"`

	// Attackers and Defenders are disjoint by construction.
	Attackers Team `json:"attackers"`
	Defenders Team `json:"defenders"`

	// WaitingRoom is where everyone returns on completion or expiry.
	WaitingRoom RoomRef `json:"waiting_room"`
	// Origin is the text channel completion and expiry notices go to.
	Origin ChannelID `json:"origin"`
	// CreatedBy is recorded for a future author-only completion policy;
	// completion is currently open to anyone in the origin channel.
	CreatedBy ParticipantID `json:"created_by"`
}

// Players returns the union of both rosters.
func (m *Match) Players() []Participant {
	out := make([]Participant, 0, len(m.Attackers.Players)+len(m.Defenders.Players))
	out = append(out, m.Attackers.Players...)
	out = append(out, m.Defenders.Players...)
	return out
}

// Age reports how long the match has been live as of now.
func (m *Match) Age(now time.Time) time.Duration {
	return now.Sub(m.CreatedAt)
}
