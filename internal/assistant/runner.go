package assistant

import (
	"context"
	"fmt"
	log "log/slog"
)

// Runner owns the engine session and feeds its events to the dispatcher
// on a dedicated goroutine.
type Runner struct {
	creds      CredentialProvider
	opener     Opener
	dispatcher *Dispatcher

	done chan struct{}
	err  error
}

func NewRunner(creds CredentialProvider, opener Opener, d *Dispatcher) *Runner {
	return &Runner{
		creds:      creds,
		opener:     opener,
		dispatcher: d,
		done:       make(chan struct{}),
	}
}

// Start launches the event loop and returns immediately. Cancelling ctx
// closes the session, which ends the loop. Start must be called once.
func (r *Runner) Start(ctx context.Context) {
	go func() {
		defer close(r.done)
		r.err = r.run(ctx)
	}()
}

// Done is closed when the loop has exited.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Err returns the error that ended the loop, or nil if the event stream
// simply ended. Valid after Done is closed.
func (r *Runner) Err() error {
	<-r.done
	return r.err
}

func (r *Runner) run(ctx context.Context) error {
	creds, err := r.creds.Credentials(ctx)
	if err != nil {
		return fmt.Errorf("get credentials: %w", err)
	}

	sess, err := r.opener.Open(ctx, creds)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Debug("Failed to close session", "err", err)
		}
	}()

	stop := context.AfterFunc(ctx, func() {
		log.Info("Shutting down session")
		sess.Close()
	})
	defer stop()

	log.Info("Session open, waiting for events")

	for ev := range sess.Events() {
		log.Debug("Event", "kind", ev.Kind, "args", ev.Args)
		if err := r.dispatcher.Handle(ctx, sess, ev); err != nil {
			return err
		}
	}

	log.Info("Event stream ended")
	return nil
}
