package chip8

// Timer is one of the two 8-bit hardware timers. The program sets it, the
// clock driver decrements it at 60 Hz through TickTimers, and it clamps at
// zero. The instruction cycle never decrements it.
type Timer struct {
	value uint8
}

func (t *Timer) Set(v uint8) {
	t.value = v
}

func (t *Timer) Get() uint8 {
	return t.value
}

// Tick decrements the timer once, stopping at zero.
func (t *Timer) Tick() {
	if t.value > 0 {
		t.value--
	}
}
