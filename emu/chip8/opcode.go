package chip8

import "fmt"

// opKind is the closed set of operations the decoder can produce. Anything
// that does not decode to one of these faults with ErrUnknownOpcode.
type opKind uint8

const (
	opUnknown opKind = iota
	opSys
	opCls
	opRet
	opJump
	opCall
	opSkipEqImm
	opSkipNeImm
	opSkipEqReg
	opLoadImm
	opAddImm
	opMove
	opOr
	opAnd
	opXor
	opAdd
	opSub
	opShiftRight
	opSubN
	opShiftLeft
	opSkipNeReg
	opLoadIndex
	opJumpV0
	opRandom
	opDraw
	opSkipKey
	opSkipNoKey
	opReadDelay
	opWaitKey
	opSetDelay
	opSetSound
	opAddIndex
	opFontIndex
	opBCD
	opStoreRegs
	opLoadRegs
)

// instruction is a decoded opcode with every nibble field extracted.
type instruction struct {
	kind opKind
	x    uint8  // second nibble, register index
	y    uint8  // third nibble, register index
	n    uint8  // low nibble
	nn   uint8  // low byte
	nnn  uint16 // low 12 bits, address
}

// decode classifies a 16-bit opcode. It never fails; undecodable patterns
// come back as opUnknown and fault in execute.
func decode(op uint16) instruction {
	in := instruction{
		x:   uint8(op >> 8 & 0xF),
		y:   uint8(op >> 4 & 0xF),
		n:   uint8(op & 0xF),
		nn:  uint8(op & 0xFF),
		nnn: op & 0x0FFF,
	}

	switch op >> 12 {
	case 0x0:
		switch op {
		case 0x00E0:
			in.kind = opCls
		case 0x00EE:
			in.kind = opRet
		default:
			// 0NNN: SYS runs machine code on the original hardware,
			// here it behaves as a plain jump.
			in.kind = opSys
		}
	case 0x1:
		in.kind = opJump
	case 0x2:
		in.kind = opCall
	case 0x3:
		in.kind = opSkipEqImm
	case 0x4:
		in.kind = opSkipNeImm
	case 0x5:
		if in.n == 0 {
			in.kind = opSkipEqReg
		}
	case 0x6:
		in.kind = opLoadImm
	case 0x7:
		in.kind = opAddImm
	case 0x8:
		switch in.n {
		case 0x0:
			in.kind = opMove
		case 0x1:
			in.kind = opOr
		case 0x2:
			in.kind = opAnd
		case 0x3:
			in.kind = opXor
		case 0x4:
			in.kind = opAdd
		case 0x5:
			in.kind = opSub
		case 0x6:
			in.kind = opShiftRight
		case 0x7:
			in.kind = opSubN
		case 0xE:
			in.kind = opShiftLeft
		}
	case 0x9:
		if in.n == 0 {
			in.kind = opSkipNeReg
		}
	case 0xA:
		in.kind = opLoadIndex
	case 0xB:
		in.kind = opJumpV0
	case 0xC:
		in.kind = opRandom
	case 0xD:
		in.kind = opDraw
	case 0xE:
		switch in.nn {
		case 0x9E:
			in.kind = opSkipKey
		case 0xA1:
			in.kind = opSkipNoKey
		}
	case 0xF:
		switch in.nn {
		case 0x07:
			in.kind = opReadDelay
		case 0x0A:
			in.kind = opWaitKey
		case 0x15:
			in.kind = opSetDelay
		case 0x18:
			in.kind = opSetSound
		case 0x1E:
			in.kind = opAddIndex
		case 0x29:
			in.kind = opFontIndex
		case 0x33:
			in.kind = opBCD
		case 0x55:
			in.kind = opStoreRegs
		case 0x65:
			in.kind = opLoadRegs
		}
	}
	return in
}

// Step fetches and executes a single instruction. The program counter is
// advanced past the instruction before the side effects run, so jump, call
// and skip operations simply overwrite it. Faults are fatal, see errors.go.
func (vm *VM) Step() error {
	op, err := vm.fetch()
	if err != nil {
		return err
	}
	at := vm.pc
	vm.pc += 2
	return vm.execute(at, op, decode(op))
}

// fetch reads the big-endian instruction word at PC. A misaligned or
// out-of-range PC is a fault: executing a sheared instruction stream would
// only produce garbage.
func (vm *VM) fetch() (uint16, error) {
	if vm.pc%2 != 0 || int(vm.pc)+1 >= MemorySize {
		return 0, fmt.Errorf("%w: PC 0x%03X", ErrAddressOutOfRange, vm.pc)
	}
	return uint16(vm.memory[vm.pc])<<8 | uint16(vm.memory[vm.pc+1]), nil
}

func (vm *VM) execute(at, op uint16, in instruction) error {
	switch in.kind {
	case opSys, opJump:
		vm.pc = in.nnn

	case opCls:
		vm.Display.Clear()

	case opRet:
		if vm.sp == 0 {
			return opFault(ErrStackUnderflow, op, at)
		}
		vm.sp--
		vm.pc = vm.stack[vm.sp]

	case opCall:
		if vm.sp == stackDepth {
			return opFault(ErrStackOverflow, op, at)
		}
		vm.stack[vm.sp] = vm.pc // return address, PC is already past the CALL
		vm.sp++
		vm.pc = in.nnn

	case opSkipEqImm:
		if vm.v[in.x] == in.nn {
			vm.pc += 2
		}

	case opSkipNeImm:
		if vm.v[in.x] != in.nn {
			vm.pc += 2
		}

	case opSkipEqReg:
		if vm.v[in.x] == vm.v[in.y] {
			vm.pc += 2
		}

	case opLoadImm:
		vm.v[in.x] = in.nn

	case opAddImm:
		vm.v[in.x] += in.nn // no carry flag on the immediate form

	case opMove:
		vm.v[in.x] = vm.v[in.y]

	case opOr:
		vm.v[in.x] |= vm.v[in.y]

	case opAnd:
		vm.v[in.x] &= vm.v[in.y]

	case opXor:
		vm.v[in.x] ^= vm.v[in.y]

	case opAdd:
		sum := uint16(vm.v[in.x]) + uint16(vm.v[in.y])
		vm.v[in.x] = uint8(sum)
		vm.setFlag(sum > 0xFF)

	case opSub:
		noBorrow := vm.v[in.x] >= vm.v[in.y]
		vm.v[in.x] -= vm.v[in.y]
		vm.setFlag(noBorrow)

	case opShiftRight:
		// Vx is shifted in place, Vy is ignored.
		bit := vm.v[in.x] & 1
		vm.v[in.x] >>= 1
		vm.v[0xF] = bit

	case opSubN:
		noBorrow := vm.v[in.y] >= vm.v[in.x]
		vm.v[in.x] = vm.v[in.y] - vm.v[in.x]
		vm.setFlag(noBorrow)

	case opShiftLeft:
		bit := vm.v[in.x] >> 7
		vm.v[in.x] <<= 1
		vm.v[0xF] = bit

	case opSkipNeReg:
		if vm.v[in.x] != vm.v[in.y] {
			vm.pc += 2
		}

	case opLoadIndex:
		vm.i = in.nnn

	case opJumpV0:
		vm.pc = in.nnn + uint16(vm.v[0])

	case opRandom:
		vm.v[in.x] = uint8(vm.rng.Intn(256)) & in.nn

	case opDraw:
		start, end := int(vm.i), int(vm.i)+int(in.n)
		if end > MemorySize {
			return opFault(ErrAddressOutOfRange, op, at)
		}
		vm.setFlag(vm.Display.Draw(vm.v[in.x], vm.v[in.y], vm.memory[start:end]))

	case opSkipKey:
		if vm.Keypad.Pressed(vm.v[in.x]) {
			vm.pc += 2
		}

	case opSkipNoKey:
		if !vm.Keypad.Pressed(vm.v[in.x]) {
			vm.pc += 2
		}

	case opReadDelay:
		vm.v[in.x] = vm.delay.Get()

	case opWaitKey:
		// Blocking only within the emulated program: without a key the PC
		// is rewound so the instruction re-executes next step, while the
		// clock driver keeps ticking timers.
		key, ok := vm.Keypad.FirstPressed()
		if !ok {
			vm.pc = at
			return nil
		}
		vm.v[in.x] = key

	case opSetDelay:
		vm.delay.Set(vm.v[in.x])

	case opSetSound:
		vm.sound.Set(vm.v[in.x])

	case opAddIndex:
		vm.i += uint16(vm.v[in.x]) // no carry flag on this form

	case opFontIndex:
		vm.i = uint16(vm.v[in.x]&0xF) * fontSpriteSize

	case opBCD:
		if int(vm.i)+2 >= MemorySize {
			return opFault(ErrAddressOutOfRange, op, at)
		}
		v := vm.v[in.x]
		vm.memory[vm.i] = v / 100
		vm.memory[vm.i+1] = v / 10 % 10
		vm.memory[vm.i+2] = v % 10

	case opStoreRegs:
		// I is left unchanged by the bulk transfers.
		if int(vm.i)+int(in.x) >= MemorySize {
			return opFault(ErrAddressOutOfRange, op, at)
		}
		copy(vm.memory[vm.i:], vm.v[:in.x+1])

	case opLoadRegs:
		if int(vm.i)+int(in.x) >= MemorySize {
			return opFault(ErrAddressOutOfRange, op, at)
		}
		copy(vm.v[:in.x+1], vm.memory[vm.i:])

	default:
		return opFault(ErrUnknownOpcode, op, at)
	}
	return nil
}

// setFlag writes the VF carry/borrow/collision flag.
func (vm *VM) setFlag(cond bool) {
	if cond {
		vm.v[0xF] = 1
	} else {
		vm.v[0xF] = 0
	}
}
