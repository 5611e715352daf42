package listener

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// A command line never needs more than this.
	maxMessageSize = 512
)

// WebSocketListener serves the same line protocol as telnet over a
// websocket. Each text message from the client is one input line; each
// write to the client is one text message.
type WebSocketListener struct {
	addr     string
	path     string
	cm       *ConnectionManager
	upgrader websocket.Upgrader
}

func NewWebSocketListener(host string, port uint16, path string, cm *ConnectionManager) *WebSocketListener {
	if path == "" {
		path = "/ws"
	}
	return &WebSocketListener{
		addr: net.JoinHostPort(host, strconv.Itoa(int(port))),
		path: path,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (l *WebSocketListener) Start(ctx context.Context) error {
	connCtx, cancelConns := context.WithCancel(context.WithoutCancel(ctx))
	var wg sync.WaitGroup

	mux := http.NewServeMux()
	mux.HandleFunc(l.path, func(w http.ResponseWriter, r *http.Request) {
		wg.Add(1)
		defer wg.Done()

		ws, err := l.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.WarnContext(ctx, "upgrading websocket connection", "remote", r.RemoteAddr, "error", err)
			return
		}
		l.handleConnection(connCtx, ws)
	})

	svr := &http.Server{
		Addr:              l.addr,
		Handler:           mux,
		ReadHeaderTimeout: writeWait,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-connCtx.Done()
		if err := svr.Shutdown(context.WithoutCancel(ctx)); err != nil {
			slog.Error("shutting down websocket server", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		cancelConns()
	}()

	slog.InfoContext(ctx, "listening for websocket", "addr", l.addr, "path", l.path)
	err := svr.ListenAndServe()
	cancelConns()
	<-stopped

	// Hijacked connections are not tracked by Shutdown.
	wg.Wait()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving websocket on %s: %w", l.addr, err)
	}
	return nil
}

func (l *WebSocketListener) handleConnection(ctx context.Context, ws *websocket.Conn) {
	conn := newWsConn(ws)
	defer conn.Close()

	slog.InfoContext(ctx, "websocket connection established", "remote", ws.RemoteAddr())

	done := make(chan struct{})
	defer close(done)
	go conn.keepAlive(ctx, done)

	l.cm.AcceptConnection(ctx, conn)
}

// wsConn adapts a websocket to the io.ReadWriter the player loop expects.
type wsConn struct {
	ws *websocket.Conn

	// pending holds the unread part of the current message.
	pending bytes.Buffer

	writeMu sync.Mutex
}

func newWsConn(ws *websocket.Conn) *wsConn {
	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	return &wsConn{ws: ws}
}

func (c *wsConn) Read(p []byte) (int, error) {
	for c.pending.Len() == 0 {
		mt, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}
		if mt != websocket.TextMessage {
			continue
		}
		c.pending.Write(msg)
		if !bytes.HasSuffix(msg, []byte("\n")) {
			c.pending.WriteByte('\n')
		}
	}
	return c.pending.Read(p)
}

func (c *wsConn) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) keepAlive(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			// Unblocks the read so the session can end.
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			_ = c.ws.Close()
			return
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (c *wsConn) Close() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.Close()
}
