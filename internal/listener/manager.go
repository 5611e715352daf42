package listener

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/pixil98/go-fishery/internal/player"
)

// Runner serves one connection from login to disconnect.
type Runner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

var _ Runner = (*player.PlayerManager)(nil)

type ConnectionManager struct {
	runner Runner
	active atomic.Int64
}

func NewConnectionManager(runner Runner) *ConnectionManager {
	return &ConnectionManager{
		runner: runner,
	}
}

// Active returns the number of connections being served.
func (m *ConnectionManager) Active() int {
	return int(m.active.Load())
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	n := m.active.Add(1)
	defer m.active.Add(-1)
	slog.DebugContext(ctx, "connection accepted", "active", n)

	if err := m.runner.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}
