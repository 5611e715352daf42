package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
)

type TelnetListener struct {
	addr string
	cm   *ConnectionManager
}

func NewTelnetListener(host string, port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		addr: net.JoinHostPort(host, strconv.Itoa(int(port))),
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	sessions := newTelnetSessions(ctx, l.cm)
	svr := telnet.NewServer(l.addr, sessions)

	// On shutdown stop accepting first, then end every open session.
	stop := context.AfterFunc(ctx, func() {
		svr.Stop()
		sessions.closeAll()
	})
	defer stop()

	slog.InfoContext(ctx, "listening for telnet", "addr", l.addr)
	if err := svr.ListenAndServe(); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("address %s is already in use (another server running?)", l.addr)
		}
		return fmt.Errorf("serving telnet on %s: %w", l.addr, err)
	}
	return nil
}

// telnetSessions is the telnet server's handler. Every connection shares
// one context so shutdown can end them together.
type telnetSessions struct {
	cm     *ConnectionManager
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newTelnetSessions(parent context.Context, cm *ConnectionManager) *telnetSessions {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	return &telnetSessions{cm: cm, ctx: ctx, cancel: cancel}
}

func (s *telnetSessions) HandleTelnet(conn *telnet.Connection) {
	s.wg.Add(1)
	defer s.wg.Done()
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("closing telnet connection", "error", err)
		}
	}()

	s.cm.AcceptConnection(s.ctx, conn)
}

func (s *telnetSessions) closeAll() {
	s.cancel()
	s.wg.Wait()
}
