package assistant

import (
	"context"
	"iter"
	"sync"

	"voxpi/internal/nlu"
)

// recorder collects calls from all fakes in order.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.snapshot() {
		if c == call {
			n++
		}
	}
	return n
}

type fakeSession struct {
	rec    *recorder
	events chan Event

	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeSession(rec *recorder, evs ...Event) *fakeSession {
	s := &fakeSession{
		rec:    rec,
		events: make(chan Event, len(evs)),
		closed: make(chan struct{}),
	}
	for _, ev := range evs {
		s.events <- ev
	}
	return s
}

func (s *fakeSession) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			select {
			case <-s.closed:
				return
			case ev, ok := <-s.events:
				if !ok {
					return
				}
				if !yield(ev) {
					return
				}
			}
		}
	}
}

func (s *fakeSession) StartConversation() error {
	s.rec.add("start")
	return nil
}

func (s *fakeSession) StopConversation() error {
	s.rec.add("stop")
	return nil
}

func (s *fakeSession) Close() error {
	s.closeOnce.Do(func() {
		s.rec.add("close")
		close(s.closed)
	})
	return nil
}

func (s *fakeSession) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

type fakeStatus struct {
	mu       sync.Mutex
	statuses []Status
}

func (f *fakeStatus) SetStatus(s Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, s)
	return nil
}

func (f *fakeStatus) snapshot() []Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Status(nil), f.statuses...)
}

type fakeButton struct {
	mu    sync.Mutex
	cb    func()
	armed int
}

func (b *fakeButton) OnPress(cb func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cb = cb
	b.armed++
}

func (b *fakeButton) press() bool {
	b.mu.Lock()
	cb := b.cb
	b.mu.Unlock()
	if cb == nil {
		return false
	}
	cb()
	return true
}

type fakeVoice struct {
	rec *recorder

	mu     sync.Mutex
	volume int
}

func (v *fakeVoice) Say(_ context.Context, text string) error {
	v.rec.add("say:" + text)
	return nil
}

func (v *fakeVoice) Volume() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.volume
}

func (v *fakeVoice) SetVolume(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volume = n
}

type fakeShell struct {
	rec *recorder
	out string
}

func (s *fakeShell) Run(_ context.Context, command string) error {
	s.rec.add("run:" + command)
	return nil
}

func (s *fakeShell) Output(_ context.Context, command string) (string, error) {
	s.rec.add("output:" + command)
	return s.out, nil
}

type fixture struct {
	rec    *recorder
	status *fakeStatus
	button *fakeButton
	voice  *fakeVoice
	shell  *fakeShell
	exits  []int
}

func newFixture() *fixture {
	rec := &recorder{}
	return &fixture{
		rec:    rec,
		status: &fakeStatus{},
		button: &fakeButton{},
		voice:  &fakeVoice{rec: rec, volume: 2},
		shell:  &fakeShell{rec: rec, out: "192.168.1.20\n"},
	}
}

func (f *fixture) dispatcher(cfg DispatcherConfig) *Dispatcher {
	cfg.Status = f.status
	cfg.Button = f.button
	cfg.Actions = nlu.Actions{
		Voice:            f.voice,
		Shell:            f.shell,
		PowerOffCommand:  "sudo shutdown now",
		RebootCommand:    "sudo reboot",
		IPAddressCommand: "hostname -I | cut -d' ' -f1",
		VolumeStep:       2,
	}
	if cfg.Exit == nil {
		cfg.Exit = func(code int) { f.exits = append(f.exits, code) }
	}
	return NewDispatcher(cfg)
}

type staticCredentials struct {
	creds Credentials
	err   error
}

func (s staticCredentials) Credentials(context.Context) (Credentials, error) {
	return s.creds, s.err
}

type fakeOpener struct {
	sess *fakeSession
	err  error
	got  Credentials
}

func (o *fakeOpener) Open(_ context.Context, creds Credentials) (Session, error) {
	o.got = creds
	if o.err != nil {
		return nil, o.err
	}
	return o.sess, nil
}

func heard(text string) Event {
	return NewEvent(KindRecognizingSpeechFinished, map[string]any{"text": text})
}
