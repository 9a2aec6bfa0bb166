// Package engine talks to the external recognition engine over a WebSocket.
//
// The engine pushes one JSON object per text frame:
//
//	{"type":"ON_RECOGNIZING_SPEECH_FINISHED","args":{"text":"power off"}}
//
// and accepts control frames of the same shape:
//
//	{"type":"START_CONVERSATION"}
//	{"type":"STOP_CONVERSATION"}
package engine

import (
	"context"
	"encoding/json"
	"iter"
	log "log/slog"
	"net/http"

	"golang.org/x/net/proxy"

	"voxpi/internal/assistant"
)

const (
	StartConversation = "START_CONVERSATION"
	StopConversation  = "STOP_CONVERSATION"
)

// Control is a request sent to the engine.
type Control struct {
	Type string `json:"type"`
}

// Opener dials engine sessions.
type Opener struct {
	URL string
	// Language is the recognition locale, sent as Accept-Language.
	Language string
	// Dialer optionally carries the connection, see internal/proxy.
	Dialer proxy.Dialer
}

var _ assistant.Opener = (*Opener)(nil)

func (o *Opener) Open(ctx context.Context, creds assistant.Credentials) (assistant.Session, error) {
	header := http.Header{}
	if creds.Token != "" {
		header.Set("Authorization", "Bearer "+creds.Token)
	}
	if o.Language != "" {
		header.Set("Accept-Language", o.Language)
	}

	web, err := Dial(ctx, o.URL, header, o.Dialer)
	if err != nil {
		return nil, err
	}

	log.Info("Connected to engine", "url", o.URL)
	return &Session{ws: web}, nil
}

// Session is a single engine connection.
type Session struct {
	ws *WebSocket
}

// Events yields engine events in arrival order. Frames that do not decode
// are skipped. The sequence ends on the first read error, which includes
// the engine closing the connection and Close being called.
func (s *Session) Events() iter.Seq[assistant.Event] {
	return func(yield func(assistant.Event) bool) {
		for {
			in := s.ws.Read()
			switch in.kind {
			case ConnClose:
				log.Info("Engine closed connection", "err", in.err)
				return

			case ReadFailure:
				log.Warn("Engine read failed", "err", in.err)
				return

			case ReadOK:
				ev, err := Decode(in.msg)
				if err != nil {
					log.Warn("Failed to parse", "msg", string(in.msg), "err", err)
					continue
				}
				if !yield(ev) {
					return
				}
			}
		}
	}
}

func (s *Session) StartConversation() error {
	return s.send(StartConversation)
}

func (s *Session) StopConversation() error {
	return s.send(StopConversation)
}

func (s *Session) Close() error {
	return s.ws.Close()
}

func (s *Session) send(kind string) error {
	data, err := json.Marshal(Control{Type: kind})
	if err != nil {
		return err
	}
	return s.ws.Write(data)
}

// Decode parses a single engine frame.
func Decode(b []byte) (assistant.Event, error) {
	var ev assistant.Event
	if err := json.Unmarshal(b, &ev); err != nil {
		return assistant.Event{}, err
	}
	return ev, nil
}
