// Package domain contains entities without logic, just meta-data.
package domain

type (
	GuildID       string
	ParticipantID string
	ChannelID     string
)

// Participant is the bot's read-only view of a platform member.
// The platform owns it; the core only reads it and asks for moves.
type Participant struct {
	ID       ParticipantID `json:"id"`
	Username string        `json:"username"`
	// Muted covers both self-mute and deafen; muted members in the
	// waiting room are not eligible for team selection.
	Muted bool `json:"muted"`
}
