package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"os"
	"sync/atomic"

	"voxpi/internal/nlu"
)

// ErrFatal is returned by Handle after the engine reported an
// unrecoverable error.
var ErrFatal = errors.New("assistant: fatal engine error")

const hint = `Say "OK, Google" or press the button, then speak. Press Ctrl+C to quit...`

type DispatcherConfig struct {
	Status  StatusUI
	Button  Button
	Actions nlu.Actions

	// Interactive enables the usage hint once the engine is up.
	Interactive bool
	// Out receives the usage hint. Defaults to os.Stdout.
	Out io.Writer
	// Exit terminates the process. Defaults to os.Exit.
	Exit func(code int)
}

// Dispatcher handles engine events one at a time, in order, on the
// runner's goroutine.
//
// The readiness flag is written only by Handle and read by the button
// callback on the button's goroutine. A press racing with a lifecycle event
// can observe the previous value; the resulting start or stop request is
// then rejected or ignored by the engine.
type Dispatcher struct {
	status      StatusUI
	button      Button
	actions     nlu.Actions
	interactive bool
	out         io.Writer
	exit        func(code int)

	ready atomic.Bool
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	d := &Dispatcher{
		status:      cfg.Status,
		button:      cfg.Button,
		actions:     cfg.Actions,
		interactive: cfg.Interactive,
		out:         cfg.Out,
		exit:        cfg.Exit,
	}
	if d.out == nil {
		d.out = os.Stdout
	}
	if d.exit == nil {
		d.exit = os.Exit
	}
	return d
}

// Ready reports whether a new conversation turn may be started.
func (d *Dispatcher) Ready() bool {
	return d.ready.Load()
}

// Handle processes a single event from sess. A non-nil error means the
// event could not be handled and the runner must stop.
func (d *Dispatcher) Handle(ctx context.Context, sess Session, ev Event) error {
	ready, fx := Transition(d.ready.Load(), ev)

	if fx.Exit {
		log.Error("Fatal assistant error", "args", ev.Args)
		d.exit(1)
		return ErrFatal
	}

	if fx.Status != StatusNone {
		if err := d.status.SetStatus(fx.Status); err != nil {
			log.Warn("Failed to set status", "status", fx.Status, "err", err)
		}
	}

	d.ready.Store(ready)

	if fx.ArmButton {
		d.button.OnPress(func() { d.press(sess) })
	}

	if fx.Hint && d.interactive {
		fmt.Fprintln(d.out, hint)
	}

	if fx.Heard != "" {
		log.Info("You said", "text", fx.Heard)
	}

	if !fx.Command.Matched() {
		return nil
	}

	log.Info("Running command", "intent", fx.Command.Intent)
	if err := sess.StopConversation(); err != nil {
		return fmt.Errorf("stop conversation: %w", err)
	}
	if err := nlu.Dispatch(ctx, fx.Command, d.actions); err != nil {
		return fmt.Errorf("%s: %w", fx.Command.Intent, err)
	}
	return nil
}

func (d *Dispatcher) press(sess Session) {
	if d.ready.Load() {
		log.Debug("Button pressed, starting conversation")
		if err := sess.StartConversation(); err != nil {
			log.Warn("Failed to start conversation", "err", err)
		}
		return
	}

	log.Debug("Button pressed, stopping conversation")
	if err := sess.StopConversation(); err != nil {
		log.Warn("Failed to stop conversation", "err", err)
	}
}
