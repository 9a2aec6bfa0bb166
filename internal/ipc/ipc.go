// Package ipc is the control socket of the daemon. A "press" message acts
// as a button press.
package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"os"
	"sync"
)

const DefaultSocketPath = "/tmp/voxpi.sock"

const (
	CmdPress   = "press"
	CmdTrigger = "trigger"
)

type ControlMessage struct {
	Cmd string `json:"cmd"`
}

// Server accepts control messages on a unix socket.
type Server struct {
	ln net.Listener

	mu      sync.Mutex
	onPress func()
}

// Listen binds the socket at path, replacing a stale socket file.
func Listen(path string) (*Server, error) {
	os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	return &Server{ln: ln}, nil
}

// OnPress registers cb for button presses, replacing any earlier callback.
// cb runs on the connection's goroutine.
func (s *Server) OnPress(cb func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPress = cb
}

// Serve accepts connections until the server is closed.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Warn("Accept failed", "err", err)
			continue
		}
		go s.handleConn(conn)
	}
}

func (s *Server) Close() error {
	return s.ln.Close()
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	var msg ControlMessage
	dec := json.NewDecoder(conn)
	if err := dec.Decode(&msg); err != nil {
		log.Debug("Bad control message", "err", err)
		return
	}

	switch msg.Cmd {
	case CmdPress, CmdTrigger:
		s.press()
	default:
		log.Warn("Unknown command", "cmd", msg.Cmd)
	}
}

func (s *Server) press() {
	s.mu.Lock()
	cb := s.onPress
	s.mu.Unlock()

	if cb == nil {
		log.Debug("Button pressed before it was armed")
		return
	}
	cb()
}

func SendCommand(path, cmd string) error {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return err
	}
	defer conn.Close()

	enc := json.NewEncoder(conn)
	return enc.Encode(ControlMessage{Cmd: cmd})
}
