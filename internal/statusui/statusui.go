// Package statusui shows the assistant status on a sysfs LED and plays an
// audible cue when the assistant starts listening.
package statusui

import (
	"fmt"
	log "log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"voxpi/internal/assistant"
)

// Pattern is an LED state. A zero DelayOn means steady light.
type Pattern struct {
	On       bool
	DelayOn  time.Duration
	DelayOff time.Duration
}

var patterns = map[assistant.Status]Pattern{
	assistant.StatusReady:     {DelayOn: 100 * time.Millisecond, DelayOff: 1900 * time.Millisecond},
	assistant.StatusListening: {On: true},
	assistant.StatusThinking:  {DelayOn: 100 * time.Millisecond, DelayOff: 100 * time.Millisecond},
}

// LED drives a Linux LED class device, e.g. /sys/class/leds/led0.
type LED struct {
	dir string
}

func NewLED(dir string) *LED {
	return &LED{dir: dir}
}

func (l *LED) Apply(p Pattern) error {
	if p.DelayOn > 0 {
		if err := l.write("trigger", "timer"); err != nil {
			return err
		}
		if err := l.write("delay_on", strconv.FormatInt(p.DelayOn.Milliseconds(), 10)); err != nil {
			return err
		}
		return l.write("delay_off", strconv.FormatInt(p.DelayOff.Milliseconds(), 10))
	}

	if err := l.write("trigger", "none"); err != nil {
		return err
	}
	brightness := "0"
	if p.On {
		brightness = "1"
	}
	return l.write("brightness", brightness)
}

func (l *LED) write(name, value string) error {
	path := filepath.Join(l.dir, name)
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Player plays a short sound, see notify.Cue.
type Player interface {
	Play() error
}

// UI implements assistant.StatusUI. Both the LED and the cue are optional.
type UI struct {
	led *LED
	cue Player

	mu      sync.Mutex
	current assistant.Status
}

var _ assistant.StatusUI = (*UI)(nil)

func New(led *LED, cue Player) *UI {
	return &UI{led: led, cue: cue}
}

func (u *UI) SetStatus(s assistant.Status) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	log.Info("Status", "status", s)
	u.current = s

	if s == assistant.StatusListening && u.cue != nil {
		go func() {
			if err := u.cue.Play(); err != nil {
				log.Warn("Failed to play cue", "err", err)
			}
		}()
	}

	p, ok := patterns[s]
	if !ok || u.led == nil {
		return nil
	}
	return u.led.Apply(p)
}

// Current returns the last status set.
func (u *UI) Current() assistant.Status {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.current
}
