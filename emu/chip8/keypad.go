package chip8

import (
	"sync"
	"time"
)

// NumKeys is the size of the hex keypad.
const NumKeys = 16

// Keypad tracks the 16 hex keys. Every press arms a hold deadline so a
// short physical tap stays visible to a fast-polling program for the
// configured duration. It is the only piece of VM state with a lock,
// because key events arrive from the window thread while the clock driver
// reads it between instructions.
type Keypad struct {
	mu    sync.Mutex
	hold  time.Duration
	now   func() time.Time
	until [NumKeys]time.Time // zero value means released
}

func NewKeypad(hold time.Duration) *Keypad {
	return &Keypad{
		hold: hold,
		now:  time.Now,
	}
}

// Press marks key pressed until now+hold. Re-pressing (or holding the
// physical key) re-arms the deadline.
func (k *Keypad) Press(key uint8) {
	if key >= NumKeys {
		return
	}
	k.mu.Lock()
	k.until[key] = k.now().Add(k.hold)
	k.mu.Unlock()
}

// Release handles a physical key-up. Inside the hold window it is a no-op,
// the deadline stands so the press is not lost; afterwards it clears the
// key immediately.
func (k *Keypad) Release(key uint8) {
	if key >= NumKeys {
		return
	}
	k.mu.Lock()
	if !k.now().Before(k.until[key]) {
		k.until[key] = time.Time{}
	}
	k.mu.Unlock()
}

// Pressed reports whether key is logically down.
func (k *Keypad) Pressed(key uint8) bool {
	if key >= NumKeys {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.now().Before(k.until[key])
}

// FirstPressed returns the lowest-numbered pressed key, for the
// wait-for-key instruction.
func (k *Keypad) FirstPressed() (uint8, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	now := k.now()
	for key := range k.until {
		if now.Before(k.until[key]) {
			return uint8(key), true
		}
	}
	return 0, false
}

// Expire clears keys whose hold window has elapsed. The clock driver calls
// it on every timer tick.
func (k *Keypad) Expire() {
	k.mu.Lock()
	defer k.mu.Unlock()
	now := k.now()
	for key := range k.until {
		if !k.until[key].IsZero() && !now.Before(k.until[key]) {
			k.until[key] = time.Time{}
		}
	}
}
