package chat_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/scrimkit/scrimbot/internal/adapters/chat"
	"github.com/scrimkit/scrimbot/internal/adapters/command"
	"github.com/scrimkit/scrimbot/internal/adapters/memplat"
	"github.com/scrimkit/scrimbot/internal/app"
	"github.com/scrimkit/scrimbot/internal/app/orch"
	"github.com/scrimkit/scrimbot/internal/core"
	"github.com/scrimkit/scrimbot/internal/domain"
)

// scriptConn feeds scripted inbound messages and records writes.
type scriptConn struct {
	in chan string

	mu     sync.Mutex
	out    []string
	closed bool
}

func newScriptConn() *scriptConn {
	return &scriptConn{in: make(chan string, 8)}
}

func (c *scriptConn) ReadMessage() (int, []byte, error) {
	text, ok := <-c.in
	if !ok {
		return 0, nil, io.EOF
	}
	return 1, []byte(text), nil
}

func (c *scriptConn) WriteMessage(mt int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = append(c.out, string(data))
	return nil
}

func (c *scriptConn) SetWriteDeadline(t time.Time) error { return nil }

func (c *scriptConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *scriptConn) replies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.out...)
}

type recordingPresence struct {
	mu   sync.Mutex
	left []domain.ParticipantID
}

func (p *recordingPresence) Join(guild domain.GuildID, member domain.Participant) error { return nil }

func (p *recordingPresence) Leave(guild domain.GuildID, member domain.ParticipantID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.left = append(p.left, member)
}

func (p *recordingPresence) leaves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.left)
}

func newTestDispatcher() *command.Dispatcher {
	platform := memplat.New("ScrimPre")
	return &command.Dispatcher{Ctrl: &orch.Controller{
		Registry: app.NewRegistry(),
		Rooms:    app.NewProvisioner(platform),
		Movers:   app.NewRelocator(platform),
		Platform: platform,
		Maps:     core.NewMapPool(core.DefaultMaps()),
		Clock:    core.SystemClock{},
		NewID:    uuid.NewString,
		Settings: orch.Settings{TeamSize: 5, MatchTTL: time.Hour, CategoryName: "PUGs", WaitingRoom: "ScrimPre"},
	}}
}

func TestSessionDispatchesCommandsAndLeavesOnClose(t *testing.T) {
	conn := newScriptConn()
	presence := &recordingPresence{}
	member := domain.Participant{ID: "m1", Username: "alice"}
	sess := chat.NewSession("g1", "general", member, conn, newTestDispatcher())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sess.StartWriteLoop(ctx)
	sess.StartReadLoop(ctx, presence)

	conn.in <- "!help"
	conn.in <- "just chatting"
	close(conn.in)

	require.Eventually(t, func() bool {
		return presence.leaves() == 1
	}, time.Second, 10*time.Millisecond, "read loop should leave on EOF")

	require.Eventually(t, func() bool {
		replies := conn.replies()
		return len(replies) == 1 && replies[0] != ""
	}, time.Second, 10*time.Millisecond, "expected exactly the help reply")
	require.Contains(t, conn.replies()[0], "Possible commands")
}

func TestSessionTrySendAfterCloseIsRejected(t *testing.T) {
	conn := newScriptConn()
	member := domain.Participant{ID: "m1", Username: "alice"}
	sess := chat.NewSession("g1", "general", member, conn, newTestDispatcher())

	sess.Close()
	// A reply racing shutdown must degrade to an error, never a panic.
	require.ErrorIs(t, sess.TrySend("late reply"), chat.ErrSessionClosed)
	require.ErrorIs(t, sess.TrySend("later still"), chat.ErrSessionClosed)
}

func TestSessionFlushesQueuedRepliesOnClose(t *testing.T) {
	conn := newScriptConn()
	member := domain.Participant{ID: "m1", Username: "alice"}
	sess := chat.NewSession("g1", "general", member, conn, newTestDispatcher())

	require.NoError(t, sess.TrySend("queued before close"))
	sess.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sess.StartWriteLoop(ctx)

	require.Eventually(t, func() bool {
		replies := conn.replies()
		return len(replies) == 1 && replies[0] == "queued before close"
	}, time.Second, 10*time.Millisecond, "queued reply should be flushed")
}

func TestSessionBackpressureDropsReplies(t *testing.T) {
	conn := newScriptConn()
	member := domain.Participant{ID: "m1", Username: "alice"}
	sess := chat.NewSession("g1", "general", member, conn, newTestDispatcher())

	// Without a write loop draining, the buffer eventually refuses.
	var trySendErr error
	for i := 0; i < 64; i++ {
		if trySendErr = sess.TrySend(fmt.Sprintf("msg %d", i)); trySendErr != nil {
			break
		}
	}
	require.ErrorIs(t, trySendErr, chat.ErrBackpressure)
}
