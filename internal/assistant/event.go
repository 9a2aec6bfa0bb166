package assistant

import (
	"encoding/json"
	"strings"
)

// Kind identifies an event produced by the recognition engine.
type Kind int

const (
	KindUnknown Kind = iota
	KindStartFinished
	KindConversationTurnStarted
	KindConversationTurnTimeout
	KindEndOfUtterance
	KindRecognizingSpeechFinished
	KindRespondingStarted
	KindRespondingFinished
	KindNoResponse
	KindConversationTurnFinished
	KindAlertStarted
	KindAlertFinished
	KindAssistantError
	KindMutedChanged
)

var kindNames = map[Kind]string{
	KindStartFinished:             "ON_START_FINISHED",
	KindConversationTurnStarted:   "ON_CONVERSATION_TURN_STARTED",
	KindConversationTurnTimeout:   "ON_CONVERSATION_TURN_TIMEOUT",
	KindEndOfUtterance:            "ON_END_OF_UTTERANCE",
	KindRecognizingSpeechFinished: "ON_RECOGNIZING_SPEECH_FINISHED",
	KindRespondingStarted:         "ON_RESPONDING_STARTED",
	KindRespondingFinished:        "ON_RESPONDING_FINISHED",
	KindNoResponse:                "ON_NO_RESPONSE",
	KindConversationTurnFinished:  "ON_CONVERSATION_TURN_FINISHED",
	KindAlertStarted:              "ON_ALERT_STARTED",
	KindAlertFinished:             "ON_ALERT_FINISHED",
	KindAssistantError:            "ON_ASSISTANT_ERROR",
	KindMutedChanged:              "ON_MUTED_CHANGED",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseKind maps a wire name to a Kind. The "ON_" prefix is optional and
// matching is case-insensitive. Unrecognized names map to KindUnknown.
func ParseKind(name string) Kind {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "ON_") {
		name = "ON_" + name
	}
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindUnknown
}

// MarshalJSON implements json.Marshaler.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *Kind) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	*k = ParseKind(name)
	return nil
}

// Event is a single lifecycle or result notification from the engine.
// Events are immutable once produced.
type Event struct {
	Kind Kind           `json:"type"`
	Args map[string]any `json:"args,omitempty"`
}

// NewEvent creates an event of the given kind. Args may be nil.
func NewEvent(kind Kind, args map[string]any) Event {
	return Event{Kind: kind, Args: args}
}

// Text returns the recognized text argument, if present.
func (e Event) Text() (string, bool) {
	if e.Args == nil {
		return "", false
	}
	text, ok := e.Args["text"].(string)
	return text, ok
}

// Fatal reports whether the event carries a true "is_fatal" argument.
func (e Event) Fatal() bool {
	if e.Args == nil {
		return false
	}
	fatal, _ := e.Args["is_fatal"].(bool)
	return fatal
}

func (e Event) String() string {
	return e.Kind.String()
}
