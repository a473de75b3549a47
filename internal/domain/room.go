package domain

type (
	RoomName string
	RoomID   string
)

// RoomKind distinguishes the platform channel types the bot creates.
type RoomKind string

const (
	RoomVoice    RoomKind = "voice"
	RoomCategory RoomKind = "category"
)

// RoomRef identifies a provisioned room or category on the platform.
type RoomRef struct {
	ID   RoomID   `json:"id"`
	Name RoomName `json:"name"`
}

func (r RoomRef) IsZero() bool { return r.ID == "" }
