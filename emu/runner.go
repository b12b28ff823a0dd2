// Package emu drives a chip8.VM in real time and connects it to the host
// front end (window, buzzer) through small interfaces.
package emu

import (
	"context"
	"fmt"
	"time"

	"gochip8/emu/chip8"

	"github.com/retroenv/retrogolib/log"
)

// timerRate is the hardware timer frequency, fixed by the CHIP-8
// specification and independent of the CPU clock.
const timerRate = 60

// Renderer is the display side of the front end. The runner hands it a
// read-only view of the framebuffer once per timer tick.
type Renderer interface {
	// Render draws the framebuffer and pumps window events.
	Render(d *chip8.Display)
	// PollInput forwards pending key events to the keypad.
	PollInput(k *chip8.Keypad)
	// Closed reports whether the user asked to quit.
	Closed() bool
}

// Buzzer is told on every timer tick whether the sound timer is running.
type Buzzer interface {
	SetActive(active bool)
}

// Runner is the clock driver: it executes instructions at ClockHz and
// ticks the timers at the fixed 60 Hz rate. Both are wall-clock tickers,
// so a slow or fast CPU clock never drags the timers along with it. All VM
// access happens on the goroutine calling Run.
type Runner struct {
	VM      *chip8.VM
	Screen  Renderer
	Buzzer  Buzzer
	Logger  *log.Logger
	ClockHz int
}

// Run executes until the context is cancelled, the window closes or the VM
// faults. Cancellation is honored between steps, never mid-instruction.
func (r *Runner) Run(ctx context.Context) error {
	if r.ClockHz <= 0 {
		return fmt.Errorf("CPU clock must be a positive number of Hz, got %d", r.ClockHz)
	}

	cpu := time.NewTicker(time.Second / time.Duration(r.ClockHz))
	defer cpu.Stop()
	timers := time.NewTicker(time.Second / timerRate)
	defer timers.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("emulation stopped")
			return nil

		case <-cpu.C:
			if err := r.VM.Step(); err != nil {
				return err
			}

		case <-timers.C:
			r.VM.TickTimers()
			r.Buzzer.SetActive(r.VM.SoundActive())
			r.Screen.Render(r.VM.Display)
			r.Screen.PollInput(r.VM.Keypad)
			if r.Screen.Closed() {
				r.Logger.Info("window closed")
				return nil
			}
		}
	}
}
