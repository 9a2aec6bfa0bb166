package engine

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
	"golang.org/x/net/proxy"
)

const closeGrace = time.Second

// ErrClosed is returned when writing to a closed connection.
var ErrClosed = errors.New("engine: connection closed")

type WebSocket struct {
	conn *ws.Conn
	url  string

	writeMu sync.Mutex
	closed  bool
}

// Dial connects to url. When dialer is non-nil it carries the TCP
// connection, e.g. through a SOCKS proxy.
func Dial(ctx context.Context, url string, header http.Header, dialer proxy.Dialer) (*WebSocket, error) {
	log.Debug("Dial engine", "url", url)

	d := *ws.DefaultDialer
	if dialer != nil {
		d.NetDialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		}
	}

	conn, resp, err := d.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %s)", url, err, resp.Status)
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	return &WebSocket{conn: conn, url: url}, nil
}

// Write sends one text frame. Safe for concurrent use.
func (web *WebSocket) Write(payload []byte) error {
	web.writeMu.Lock()
	defer web.writeMu.Unlock()

	if web.closed {
		return ErrClosed
	}
	log.Debug("Write ws", "msg", string(payload))
	return web.conn.WriteMessage(ws.TextMessage, payload)
}

type IncomeKind uint

const (
	ConnClose IncomeKind = iota
	ReadFailure
	ReadOK
)

type Income struct {
	kind IncomeKind
	msg  []byte
	err  error
}

// Read blocks for the next frame. Must be called from a single goroutine.
func (web *WebSocket) Read() Income {
	_, msg, err := web.conn.ReadMessage()
	if err != nil {
		if IsClosed(err) {
			return Income{kind: ConnClose, err: err}
		}
		return Income{kind: ReadFailure, err: err}
	}

	log.Debug("Read ws", "msg", string(msg))
	return Income{kind: ReadOK, msg: msg}
}

// Close sends a close frame and releases the connection. Safe to call
// more than once.
func (web *WebSocket) Close() error {
	web.writeMu.Lock()
	defer web.writeMu.Unlock()

	if web.closed {
		return nil
	}
	web.closed = true

	_ = web.conn.WriteControl(ws.CloseMessage,
		ws.FormatCloseMessage(ws.CloseNormalClosure, ""),
		time.Now().Add(closeGrace))
	return web.conn.Close()
}

func IsClosed(err error) bool {
	return ws.IsCloseError(err,
		ws.CloseNormalClosure,
		ws.CloseGoingAway,
		ws.CloseAbnormalClosure)
}
