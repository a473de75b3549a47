package app_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/scrimkit/scrimbot/internal/core"
	"github.com/scrimkit/scrimbot/internal/domain"
)

// fakePlatform records calls and lets tests inject failures per member
// or per operation.
type fakePlatform struct {
	mu sync.Mutex

	rooms     map[domain.RoomID]fakeRoom
	seq       int
	creates   int
	createErr error

	moves   map[domain.ParticipantID]domain.RoomID
	moveErr map[domain.ParticipantID]error

	deleted   []domain.RoomID
	deleteErr error
}

type fakeRoom struct {
	ref    domain.RoomRef
	parent domain.RoomID
	kind   domain.RoomKind
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		rooms:   make(map[domain.RoomID]fakeRoom),
		moves:   make(map[domain.ParticipantID]domain.RoomID),
		moveErr: make(map[domain.ParticipantID]error),
	}
}

var _ core.Platform = (*fakePlatform)(nil)

func (f *fakePlatform) WaitingParticipants(ctx context.Context, guild domain.GuildID, excludes []string) (core.Roster, error) {
	return core.Roster{}, nil
}

func (f *fakePlatform) FindRoom(ctx context.Context, guild domain.GuildID, name domain.RoomName, parent domain.RoomID, kind domain.RoomKind) (domain.RoomRef, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rooms {
		if r.ref.Name == name && r.parent == parent && r.kind == kind {
			return r.ref, true, nil
		}
	}
	return domain.RoomRef{}, false, nil
}

func (f *fakePlatform) CreateRoom(ctx context.Context, guild domain.GuildID, name domain.RoomName, parent domain.RoomID, kind domain.RoomKind, reason string) (domain.RoomRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.RoomRef{}, f.createErr
	}
	f.seq++
	f.creates++
	ref := domain.RoomRef{ID: domain.RoomID(fmt.Sprintf("room-%d", f.seq)), Name: name}
	f.rooms[ref.ID] = fakeRoom{ref: ref, parent: parent, kind: kind}
	return ref, nil
}

func (f *fakePlatform) DeleteRoom(ctx context.Context, guild domain.GuildID, room domain.RoomID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.rooms, room)
	f.deleted = append(f.deleted, room)
	return nil
}

func (f *fakePlatform) MoveMember(ctx context.Context, guild domain.GuildID, member domain.ParticipantID, dest domain.RoomID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.moveErr[member]; err != nil {
		return err
	}
	f.moves[member] = dest
	return nil
}

func (f *fakePlatform) SendMessage(ctx context.Context, channel domain.ChannelID, text string) error {
	return nil
}

func (f *fakePlatform) movedTo(member domain.ParticipantID) (domain.RoomID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.moves[member]
	return room, ok
}
