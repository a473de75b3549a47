// Package chat is the websocket chat gateway: one connection per member,
// text lines in, bot replies out. Connecting places the member in the
// guild's waiting room; disconnecting removes them.
package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/scrimkit/scrimbot/internal/adapters/command"
	"github.com/scrimkit/scrimbot/internal/domain"
)

var (
	ErrBackpressure  = errors.New("backpressure")
	ErrSessionClosed = errors.New("session closed")
)

const writeTimeout = 5 * time.Second

// Presence is the platform capability the gateway drives: members come
// and go with their connections.
type Presence interface {
	Join(guild domain.GuildID, p domain.Participant) error
	Leave(guild domain.GuildID, member domain.ParticipantID)
}

// Conn is an indirection over *websocket.Conn to ease testing.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(mt int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Session is one member's gateway connection. The adapter owns the
// transport and closes it on exit.
type Session struct {
	guild    domain.GuildID
	origin   domain.ChannelID
	member   domain.Participant
	conn     Conn
	send     chan string
	done     chan struct{}
	once     sync.Once
	dispatch *command.Dispatcher
}

func NewSession(guild domain.GuildID, origin domain.ChannelID, member domain.Participant, conn Conn, d *command.Dispatcher) *Session {
	return &Session{
		guild:    guild,
		origin:   origin,
		member:   member,
		conn:     conn,
		send:     make(chan string, 16),
		done:     make(chan struct{}),
		dispatch: d,
	}
}

// TrySend queues a reply without blocking the caller. send is never
// closed; shutdown is signaled through done so a queue attempt racing
// Close degrades to an error instead of a panic.
func (s *Session) TrySend(text string) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.send <- text:
		return nil
	default:
		return ErrBackpressure
	}
}

func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// StartWriteLoop pumps replies to the network. On shutdown it flushes
// replies already queued before exiting.
func (s *Session) StartWriteLoop(ctx context.Context) {
	go func() {
		defer s.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				s.flush()
				return
			case text := <-s.send:
				if !s.write(text) {
					return
				}
			}
		}
	}()
}

func (s *Session) flush() {
	for {
		select {
		case text := <-s.send:
			if !s.write(text) {
				return
			}
		default:
			return
		}
	}
}

func (s *Session) write(text string) bool {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, []byte(text)) == nil
}

// StartReadLoop reads chat lines and dispatches commands. On exit the
// member leaves the guild so the waiting room does not leak ghosts.
func (s *Session) StartReadLoop(ctx context.Context, presence Presence) {
	go func() {
		defer s.Close()
		defer presence.Leave(s.guild, s.member.ID)

		for {
			select {
			case <-ctx.Done():
				return
			default:
				_, data, err := s.conn.ReadMessage()
				if err != nil {
					log.Debug().Err(err).Str("module", "chat").Str("member", string(s.member.ID)).Msg("read loop closed")
					return
				}
				reply := s.dispatch.Handle(ctx, command.Request{
					Guild:  s.guild,
					Origin: s.origin,
					Author: s.member.ID,
					Text:   string(data),
				})
				if reply == "" {
					continue
				}
				if err := s.TrySend(reply); err != nil {
					log.Warn().Err(err).Str("module", "chat").Str("member", string(s.member.ID)).Msg("reply dropped")
				}
			}
		}
	}()
}
