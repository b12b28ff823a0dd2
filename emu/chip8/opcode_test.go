package chip8

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestArithmeticFlags(t *testing.T) {
	tests := []struct {
		name   string
		op     uint16 // operates on V0, V1
		v0, v1 uint8
		wantV0 uint8
		wantVF uint8
	}{
		{"add with carry", 0x8014, 0xFF, 0x01, 0x00, 1},
		{"add without carry", 0x8014, 0x0F, 0x01, 0x10, 0},
		{"sub with borrow", 0x8015, 0x05, 0x0A, 0xFB, 0},
		{"sub without borrow", 0x8015, 0x0A, 0x05, 0x05, 1},
		{"subn without borrow", 0x8017, 0x05, 0x0A, 0x05, 1},
		{"subn with borrow", 0x8017, 0x0A, 0x05, 0xFB, 0},
		{"shr shifts out one", 0x8016, 0x05, 0x00, 0x02, 1},
		{"shr shifts out zero", 0x8016, 0x04, 0x00, 0x02, 0},
		{"shl shifts out one", 0x801E, 0x81, 0x00, 0x02, 1},
		{"shl shifts out zero", 0x801E, 0x41, 0x00, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := New(testHold)
			vm.v[0] = tt.v0
			vm.v[1] = tt.v1
			writeOps(vm, 0x200, tt.op)

			assert.NoError(t, vm.Step())
			assert.Equal(t, tt.wantV0, vm.v[0])
			assert.Equal(t, tt.wantVF, vm.v[0xF])
			assert.Equal(t, uint16(0x202), vm.pc)
		})
	}
}

func TestLogicOps(t *testing.T) {
	tests := []struct {
		name   string
		op     uint16
		wantV0 uint8
	}{
		{"move", 0x8010, 0x0A},
		{"or", 0x8011, 0x0E},
		{"and", 0x8012, 0x08},
		{"xor", 0x8013, 0x06},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := New(testHold)
			vm.v[0] = 0x0C
			vm.v[1] = 0x0A
			writeOps(vm, 0x200, tt.op)

			assert.NoError(t, vm.Step())
			assert.Equal(t, tt.wantV0, vm.v[0])
		})
	}
}

func TestImmediateOps(t *testing.T) {
	vm := New(testHold)
	writeOps(vm, 0x200,
		0x60FE, // LD V0, $FE
		0x7003, // ADD V0, $03, wraps without touching VF
	)

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(0xFE), vm.v[0])

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(0x01), vm.v[0])
	assert.Equal(t, uint8(0), vm.v[0xF])
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		op     uint16 // compares V0 (and V1 for the register forms)
		v0, v1 uint8
		skip   bool
	}{
		{"se imm taken", 0x3042, 0x42, 0, true},
		{"se imm not taken", 0x3042, 0x41, 0, false},
		{"sne imm taken", 0x4042, 0x41, 0, true},
		{"sne imm not taken", 0x4042, 0x42, 0, false},
		{"se reg taken", 0x5010, 7, 7, true},
		{"se reg not taken", 0x5010, 7, 8, false},
		{"sne reg taken", 0x9010, 7, 8, true},
		{"sne reg not taken", 0x9010, 7, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := New(testHold)
			vm.v[0] = tt.v0
			vm.v[1] = tt.v1
			writeOps(vm, 0x200, tt.op)

			assert.NoError(t, vm.Step())
			wantPC := uint16(0x202)
			if tt.skip {
				wantPC = 0x204
			}
			assert.Equal(t, wantPC, vm.pc)
		})
	}
}

func TestJumps(t *testing.T) {
	t.Run("jp", func(t *testing.T) {
		vm := New(testHold)
		writeOps(vm, 0x200, 0x1300)
		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x300), vm.pc)
	})

	t.Run("jp v0 offset", func(t *testing.T) {
		vm := New(testHold)
		vm.v[0] = 0x10
		writeOps(vm, 0x200, 0xB2F0)
		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x300), vm.pc)
	})

	t.Run("sys behaves as jump", func(t *testing.T) {
		vm := New(testHold)
		writeOps(vm, 0x200, 0x0300)
		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x300), vm.pc)
	})
}

func TestIndexOps(t *testing.T) {
	vm := New(testHold)
	vm.v[0] = 0x02
	vm.v[1] = 0x0A
	writeOps(vm, 0x200,
		0xA123, // LD I, $123
		0xF01E, // ADD I, V0
		0xF129, // LD F, V1
	)

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(0x123), vm.i)

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(0x125), vm.i)

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(0x0A*fontSpriteSize), vm.i)
}

func TestBCD(t *testing.T) {
	vm := New(testHold)
	vm.v[5] = 234
	writeOps(vm, 0x200,
		0xA400, // LD I, $400
		0xF533, // LD B, V5
	)

	assert.NoError(t, vm.Step())
	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(2), vm.memory[0x400])
	assert.Equal(t, uint8(3), vm.memory[0x401])
	assert.Equal(t, uint8(4), vm.memory[0x402])
}

func TestBulkStoreLoad(t *testing.T) {
	vm := New(testHold)
	for i := uint8(0); i <= 3; i++ {
		vm.v[i] = i + 10
	}
	writeOps(vm, 0x200,
		0xA400, // LD I, $400
		0xF355, // LD [I], V3
		0xF365, // LD V3, [I]
	)

	assert.NoError(t, vm.Step())
	assert.NoError(t, vm.Step())
	for i := uint16(0); i <= 3; i++ {
		assert.Equal(t, uint8(i+10), vm.memory[0x400+i])
	}
	assert.Equal(t, uint8(0), vm.memory[0x404]) // V4 not stored
	assert.Equal(t, uint16(0x400), vm.i)        // I unchanged

	vm.v = [numRegs]uint8{}
	assert.NoError(t, vm.Step())
	for i := uint8(0); i <= 3; i++ {
		assert.Equal(t, i+10, vm.v[i])
	}
	assert.Equal(t, uint16(0x400), vm.i)
}

func TestRandomMasked(t *testing.T) {
	vm := New(testHold)
	vm.rng = rand.New(rand.NewSource(1))
	writeOps(vm, 0x200,
		0xC000, // RND V0, $00
		0xC10F, // RND V1, $0F
	)

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(0), vm.v[0])

	assert.NoError(t, vm.Step())
	assert.True(t, vm.v[1] <= 0x0F)
}

func TestTimerOps(t *testing.T) {
	vm := New(testHold)
	vm.v[0] = 9
	writeOps(vm, 0x200,
		0xF015, // LD DT, V0
		0xF018, // LD ST, V0
		0xF107, // LD V1, DT
	)

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(9), vm.delay.Get())

	assert.NoError(t, vm.Step())
	assert.True(t, vm.SoundActive())

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(9), vm.v[1])
}

func TestDrawOp(t *testing.T) {
	vm := New(testHold)
	writeOps(vm, 0x200,
		0xA000, // LD I, $000, the font sprite for 0
		0xD015, // DRW V0, V1, $5
		0xD015, // same sprite again
	)

	assert.NoError(t, vm.Step())

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(0), vm.v[0xF])
	assert.True(t, vm.Display.Pixel(0, 0))

	// The second draw XORs everything off again and reports the collision.
	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(1), vm.v[0xF])
	assert.False(t, vm.Display.Pixel(0, 0))
}

func TestDrawSpriteOutOfRange(t *testing.T) {
	vm := New(testHold)
	writeOps(vm, 0x200,
		0xAFFF, // LD I, $FFF
		0xD015, // DRW reads 5 sprite bytes past the end of memory
	)

	assert.NoError(t, vm.Step())
	err := vm.Step()
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
}

func TestClearScreenOp(t *testing.T) {
	vm := New(testHold)
	writeOps(vm, 0x200,
		0xA000,
		0xD015,
		0x00E0, // CLS
	)

	assert.NoError(t, vm.Step())
	assert.NoError(t, vm.Step())
	assert.True(t, vm.Display.Pixel(0, 0))

	assert.NoError(t, vm.Step())
	assert.False(t, vm.Display.Pixel(0, 0))
}

func TestKeySkips(t *testing.T) {
	tests := []struct {
		name    string
		op      uint16
		pressed bool
		skip    bool
	}{
		{"skp pressed", 0xE09E, true, true},
		{"skp released", 0xE09E, false, false},
		{"sknp pressed", 0xE0A1, true, false},
		{"sknp released", 0xE0A1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := New(testHold)
			vm.v[0] = 0x5
			writeOps(vm, 0x200, tt.op)
			if tt.pressed {
				vm.Keypad.Press(0x5)
			}

			assert.NoError(t, vm.Step())
			wantPC := uint16(0x202)
			if tt.skip {
				wantPC = 0x204
			}
			assert.Equal(t, wantPC, vm.pc)
		})
	}
}

func TestWaitKey(t *testing.T) {
	vm := New(testHold)
	writeOps(vm, 0x200, 0xF30A) // LD V3, K

	// Without a key the instruction re-executes; the PC stays put so the
	// clock driver can keep ticking timers around it.
	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(0x200), vm.pc)
	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(0x200), vm.pc)

	vm.Keypad.Press(0x8)
	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(0x202), vm.pc)
	assert.Equal(t, uint8(0x8), vm.v[3])
}
