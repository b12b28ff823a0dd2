// Package chip8 implements the CHIP-8 virtual machine: memory, registers,
// timers, keypad and display state, and the instruction interpreter. The
// package has no I/O; rendering, audio and OS input live in the packages
// around it and talk to the machine through its exported state.
package chip8

import (
	"fmt"
	"math/rand"
	"time"
)

// Memory map:
//
//	0x000-0x1FF - interpreter area, holds the built-in font at 0x000
//	0x200-0xFFF - program ROM and work RAM
const (
	// MemorySize is the full CHIP-8 address space in bytes.
	MemorySize = 4096

	// ProgramStart is the conventional program entry point.
	ProgramStart = 0x200

	stackDepth = 16
	numRegs    = 16

	// fontSpriteSize is the height in bytes of one built-in digit sprite.
	fontSpriteSize = 5

	maxROMSize = MemorySize - ProgramStart
)

// FontSet holds the 4x5 pixel sprites for the hex digits 0-F, loaded at
// address 0x000 of every machine.
var FontSet = [80]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// VM is one CHIP-8 machine. It is not safe for concurrent use: the clock
// driver owns it and serializes Step and TickTimers. The keypad is the one
// exception, it takes its own lock because key events arrive from the
// window thread.
type VM struct {
	memory [MemorySize]uint8
	v      [numRegs]uint8
	i      uint16
	pc     uint16
	stack  [stackDepth]uint16
	sp     uint8

	delay Timer
	sound Timer

	Display *Display
	Keypad  *Keypad

	rng *rand.Rand
}

// New returns a machine with the font seeded, the program counter at the
// entry point and everything else zeroed. keyHold is how long a key press
// stays visible to the program.
func New(keyHold time.Duration) *VM {
	vm := &VM{
		pc:      ProgramStart,
		Display: NewDisplay(),
		Keypad:  NewKeypad(keyHold),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	copy(vm.memory[:], FontSet[:])
	return vm
}

// Load copies a ROM image into memory at the program entry point.
func (vm *VM) Load(rom []byte) error {
	if len(rom) > maxROMSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrROMTooLarge, len(rom), maxROMSize)
	}
	copy(vm.memory[ProgramStart:], rom)
	return nil
}

// TickTimers decrements both hardware timers and expires held keys. The
// clock driver calls it at a fixed 60 Hz, independent of the CPU clock.
func (vm *VM) TickTimers() {
	vm.delay.Tick()
	vm.sound.Tick()
	vm.Keypad.Expire()
}

// SoundActive reports whether the buzzer should be on.
func (vm *VM) SoundActive() bool {
	return vm.sound.Get() > 0
}

// PC returns the current program counter.
func (vm *VM) PC() uint16 {
	return vm.pc
}

// Opcode returns the instruction word at the current program counter
// without executing it.
func (vm *VM) Opcode() (uint16, error) {
	return vm.fetch()
}

// DumpState formats the register file on one line, for the tracer.
func (vm *VM) DumpState() string {
	return fmt.Sprintf("pc=0x%03X i=0x%03X sp=%d dt=%d st=%d v=%X",
		vm.pc, vm.i, vm.sp, vm.delay.Get(), vm.sound.Get(), vm.v)
}
