package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/pixil98/go-fishery/internal/commands"
	"github.com/pixil98/go-fishery/internal/events"
	"github.com/pixil98/go-fishery/internal/session"
	"github.com/pixil98/go-fishery/internal/storage"
)

const (
	maxNameTries = 5
	minNameLen   = 3
	maxNameLen   = 16
	// msgBuffer is how many rendered events a player can fall behind by.
	msgBuffer = 32
)

// Subscriber delivers raw payloads published on a subject.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// PlayerManager logs connections in and runs them against their sessions.
type PlayerManager struct {
	sessions   *session.Manager
	cmdHandler *commands.Handler
	subs       Subscriber
}

func NewPlayerManager(sessions *session.Manager, cmd *commands.Handler, subs Subscriber) *PlayerManager {
	return &PlayerManager{
		sessions:   sessions,
		cmdHandler: cmd,
		subs:       subs,
	}
}

// RunSession serves one connection from login to disconnect. The session is
// saved and closed however the connection ends.
func (m *PlayerManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	br := bufio.NewReader(conn)

	s, err := m.login(ctx, conn, br)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	defer func() {
		// The connection context may already be gone.
		if err := m.sessions.Close(context.WithoutCancel(ctx), s.Id()); err != nil {
			slog.ErrorContext(ctx, "closing session", "session", s.Id(), "error", err)
		}
	}()

	p := &Player{
		conn:       conn,
		input:      br,
		session:    s,
		cmdHandler: m.cmdHandler,
		msgs:       make(chan string, msgBuffer),
	}

	unsubscribe, err := m.subs.Subscribe(events.Subject(s.Id()), func(data []byte) {
		e, err := events.Decode(data)
		if err != nil {
			slog.Warn("decoding event", "session", s.Id(), "error", err)
			return
		}
		if msg := Render(e); msg != "" {
			p.deliver(msg)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer unsubscribe()

	err = p.Play(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (m *PlayerManager) login(ctx context.Context, conn io.Writer, br *bufio.Reader) (*session.Session, error) {
	if _, err := conn.Write([]byte("Welcome to the harbour!\n")); err != nil {
		return nil, err
	}

	for {
		name, err := Prompt(conn, br, "What name do you fish under? ",
			WithMaxTries(maxNameTries),
			WithValidator(validName),
		)
		if err != nil {
			return nil, err
		}
		id := strings.ToLower(name)

		if !m.sessions.Known(id) {
			ok, err := PromptYN(conn, br, fmt.Sprintf("New around here, %s? Start fresh under that name (Y/N)? ", name))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		s, err := m.sessions.Open(ctx, id)
		if err != nil {
			if m.sessions.Get(id) != nil {
				if _, err := conn.Write([]byte("Someone is already fishing under that name.\n")); err != nil {
					return nil, err
				}
				continue
			}
			return nil, err
		}
		return s, nil
	}
}

func validName(str string) (bool, string) {
	if len(str) < minNameLen || len(str) > maxNameLen {
		return false, fmt.Sprintf("Names are %d to %d letters long.\n", minNameLen, maxNameLen)
	}
	for _, r := range str {
		if !unicode.IsLetter(r) {
			return false, "Names are letters only.\n"
		}
	}
	if !storage.ValidIdentifier(strings.ToLower(str)) {
		return false, "Names are plain letters only.\n"
	}
	return true, ""
}
