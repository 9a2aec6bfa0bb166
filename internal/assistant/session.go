package assistant

import (
	"context"
	"iter"
)

// Credentials authorize a session with the recognition engine.
type Credentials struct {
	Token string `json:"token"`
}

// CredentialProvider supplies engine credentials.
type CredentialProvider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// Session is one live connection to the recognition engine.
//
// StartConversation and StopConversation may be called from any goroutine,
// including concurrently with iteration over Events. Both must be safe to
// issue in a state where they make no sense (e.g. stop with no active turn);
// the engine is expected to reject or ignore such requests.
type Session interface {
	// Events returns the ordered event stream. It is not restartable and
	// ends when the engine disconnects or the session is closed.
	Events() iter.Seq[Event]
	StartConversation() error
	StopConversation() error
	Close() error
}

// Opener opens sessions with the recognition engine.
type Opener interface {
	Open(ctx context.Context, creds Credentials) (Session, error)
}

// Status is the state shown on the device status indicator.
type Status int

const (
	StatusNone Status = iota
	StatusReady
	StatusListening
	StatusThinking
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusListening:
		return "listening"
	case StatusThinking:
		return "thinking"
	default:
		return "none"
	}
}

// StatusUI shows the assistant status to the user.
type StatusUI interface {
	SetStatus(s Status) error
}

// Button is a trigger source. OnPress replaces any previously registered
// callback; the callback runs on a goroutine owned by the Button.
type Button interface {
	OnPress(cb func())
}
