// Package audio emits the buzzer tone while the VM's sound timer runs.
package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneHz     = 440
)

// Buzzer plays a steady sine tone whenever the sound timer is nonzero. The
// tone is generated, not decoded from an asset, so the binary is
// self-contained.
type Buzzer struct {
	ctrl *beep.Ctrl
}

// New initializes the speaker and starts the tone in a paused state.
func New() (*Buzzer, error) {
	tone, err := generators.SinTone(sampleRate, toneHz)
	if err != nil {
		return nil, err
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	ctrl := &beep.Ctrl{Streamer: tone, Paused: true}
	speaker.Play(ctrl)
	return &Buzzer{ctrl: ctrl}, nil
}

// SetActive starts or stops the tone. Called on every timer tick, so it
// only flips the paused flag under the speaker lock.
func (b *Buzzer) SetActive(active bool) {
	speaker.Lock()
	b.ctrl.Paused = !active
	speaker.Unlock()
}
