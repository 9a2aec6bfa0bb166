// Package tts is the speech output of the device.
package tts

import (
	"context"
	"sync"
)

// Synth renders text to the speaker. See internal/tts/espeak.
type Synth interface {
	Speak(text, lang string, pitch, volume int) error
}

type Options struct {
	// Language is a locale such as "en-GB".
	Language string
	// Pitch is a percentage of the normal voice pitch, 0..200.
	Pitch int
	// Volume is the initial volume, 0..100.
	Volume int
}

// Voice serializes speech and owns the playback volume.
type Voice struct {
	synth Synth
	lang  string
	pitch int

	mu     sync.Mutex
	volume int

	speakMu sync.Mutex
}

func NewVoice(synth Synth, opts Options) *Voice {
	return &Voice{
		synth:  synth,
		lang:   opts.Language,
		pitch:  clamp(opts.Pitch, 0, 200),
		volume: clamp(opts.Volume, 0, 100),
	}
}

// Say speaks text at the current volume and blocks until it is done.
func (v *Voice) Say(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.speakMu.Lock()
	defer v.speakMu.Unlock()

	// Synth pitch is 0..100 with 50 as normal.
	return v.synth.Speak(text, v.lang, v.pitch/2, v.Volume())
}

func (v *Voice) Volume() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.volume
}

// SetVolume sets the playback volume, clamped to 0..100.
func (v *Voice) SetVolume(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volume = clamp(n, 0, 100)
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
