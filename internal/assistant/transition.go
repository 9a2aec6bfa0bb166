package assistant

import "voxpi/internal/nlu"

// Effects are the side effects the dispatcher performs for one event.
type Effects struct {
	// Status to show; StatusNone leaves the indicator alone.
	Status Status
	// ArmButton (re)registers the button callback.
	ArmButton bool
	// Hint prints the usage hint on an interactive terminal.
	Hint bool
	// Command is the classified utterance, if any. When matched the current
	// turn is stopped before the command runs.
	Command nlu.Result
	// Heard is set when the event carried recognized text.
	Heard string
	// Exit terminates the process with code 1.
	Exit bool
}

// Transition computes the readiness after ev and the effects to perform.
// It has no side effects.
func Transition(ready bool, ev Event) (bool, Effects) {
	var fx Effects

	switch ev.Kind {
	case KindStartFinished:
		fx.Status = StatusReady
		fx.ArmButton = true
		fx.Hint = true
		ready = true

	case KindConversationTurnStarted:
		fx.Status = StatusListening
		fx.ArmButton = true
		ready = false

	case KindRecognizingSpeechFinished:
		if text, ok := ev.Text(); ok {
			fx.Heard = text
			fx.Command = nlu.Classify(text)
		}

	case KindEndOfUtterance:
		fx.Status = StatusThinking

	case KindConversationTurnFinished:
		fx.Status = StatusReady
		ready = true

	case KindAssistantError:
		fx.Exit = ev.Fatal()
	}

	return ready, fx
}
