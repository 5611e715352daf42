package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-fishery/internal/commands"
	"github.com/pixil98/go-fishery/internal/display"
	"github.com/pixil98/go-fishery/internal/session"
)

// Player is one connected fisher.
type Player struct {
	conn       io.Writer
	input      *bufio.Reader
	session    *session.Session
	cmdHandler *commands.Handler

	msgs chan string
}

// Id returns the session id, the lowercase name the player logged in with.
func (p *Player) Id() string {
	return p.session.Id()
}

// Play shows the player's status and then runs commands until they quit,
// the connection drops or ctx ends. Events queued by deliver are shown as
// they arrive, between commands.
func (p *Player) Play(ctx context.Context) error {
	lines, readErr := readLines(p.input)
	defer lines.stop()

	if err := p.exec(ctx, "status"); err != nil {
		return fmt.Errorf("initial status failed: %w", err)
	}
	if err := p.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-p.msgs:
			if err := p.writeLine("\n" + msg); err != nil {
				return err
			}

		case line, ok := <-lines.c:
			if !ok {
				return readErr()
			}
			if line = strings.TrimSpace(line); line != "" {
				cmdCtx, err := p.run(ctx, line)
				if err != nil {
					return err
				}
				if cmdCtx != nil && cmdCtx.Quit {
					return nil
				}
			}
		}

		if err := p.prompt(); err != nil {
			return err
		}
	}
}

type lineFeed struct {
	c    chan string
	done chan struct{}
}

func (f lineFeed) stop() { close(f.done) }

// readLines pumps r into a channel until it fails. The returned func gives
// the read error once the channel is closed, nil for a clean EOF.
func readLines(r *bufio.Reader) (lineFeed, func() error) {
	f := lineFeed{c: make(chan string), done: make(chan struct{})}
	var failed error

	go func() {
		defer close(f.c)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				select {
				case f.c <- line:
				case <-f.done:
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					failed = err
				}
				return
			}
		}
	}()

	return f, func() error { return failed }
}

// deliver queues an already rendered event for the player. It never blocks
// the publisher; a player too far behind loses messages.
func (p *Player) deliver(msg string) {
	select {
	case p.msgs <- msg:
	default:
		slog.Warn("dropping message for slow player", "session", p.Id())
	}
}

func (p *Player) exec(ctx context.Context, line string) error {
	_, err := p.run(ctx, line)
	return err
}

// run executes one command line. Player mistakes are shown and swallowed;
// anything else ends the connection.
func (p *Player) run(ctx context.Context, line string) (*commands.CommandContext, error) {
	parts := strings.Fields(line)
	cmdCtx, err := p.cmdHandler.Exec(ctx, p.session, parts[0], parts[1:]...)
	if err != nil {
		var userErr *commands.UserError
		if errors.As(err, &userErr) {
			return nil, p.writeLine(userErr.Message)
		}
		// System error - log and disconnect
		return nil, fmt.Errorf("command execution failed: %w", err)
	}

	if out := cmdCtx.Output(); out != "" {
		if err := p.writeLine(display.Wrap(out)); err != nil {
			return nil, err
		}
	}
	return cmdCtx, nil
}

func (p *Player) prompt() error {
	v := p.session.View()
	prompt := fmt.Sprintf("[%s | hold %d/%d] > ", display.Coins(v.Wallet), v.Held, v.Capacity)
	_, err := p.conn.Write([]byte(prompt))
	return err
}

func (p *Player) writeLine(msg string) error {
	_, err := p.conn.Write([]byte(msg + "\n"))
	return err
}
