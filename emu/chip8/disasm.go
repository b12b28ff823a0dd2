package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble formats a single opcode as an assembly line, for the tracer
// and diagnostics. Patterns that match no instruction are emitted as raw
// data words.
func Disassemble(op uint16) string {
	ins := lookup(op)
	if ins == nil {
		return fmt.Sprintf(".word $%04X", op)
	}
	if params := formatParams(ins, op); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// lookup finds the instruction matching op in the metadata tables, indexed
// by first nibble and matched by mask/value.
func lookup(op uint16) *chip8.Instruction {
	for _, candidate := range chip8.Opcodes[int(op>>12)] {
		if candidate.Info.Mask&op == candidate.Info.Value {
			return candidate.Instruction
		}
	}
	return nil
}

// formatParams renders the operand list for an instruction. The same
// mnemonic covers several addressing forms, so the opcode pattern picks
// the layout.
func formatParams(ins *chip8.Instruction, op uint16) string {
	x := op >> 8 & 0xF
	y := op >> 4 & 0xF

	switch ins.Name {
	case chip8.Jp.Name:
		if op&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, $%03X", op&0x0FFF)
		}
		return fmt.Sprintf("$%03X", op&0x0FFF)
	case chip8.Call.Name:
		return fmt.Sprintf("$%03X", op&0x0FFF)
	case chip8.Se.Name, chip8.Sne.Name:
		if op&0xF000 == 0x5000 || op&0xF000 == 0x9000 {
			return fmt.Sprintf("V%X, V%X", x, y)
		}
		return fmt.Sprintf("V%X, $%02X", x, op&0x00FF)
	case chip8.Ld.Name:
		return formatLoadParams(op, x, y)
	case chip8.Add.Name:
		switch op & 0xF000 {
		case 0x7000:
			return fmt.Sprintf("V%X, $%02X", x, op&0x00FF)
		case 0x8000:
			return fmt.Sprintf("V%X, V%X", x, y)
		default: // FX1E
			return fmt.Sprintf("I, V%X", x)
		}
	case chip8.Or.Name, chip8.And.Name, chip8.Xor.Name, chip8.Sub.Name, chip8.Subn.Name:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.Shr.Name, chip8.Shl.Name, chip8.Skp.Name, chip8.Sknp.Name:
		return fmt.Sprintf("V%X", x)
	case chip8.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", x, op&0x00FF)
	case chip8.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, op&0x000F)
	}
	return ""
}

// formatLoadParams handles the many LD forms.
func formatLoadParams(op, x, y uint16) string {
	switch {
	case op&0xF000 == 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, op&0x00FF)
	case op&0xF000 == 0x8000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case op&0xF000 == 0xA000:
		return fmt.Sprintf("I, $%03X", op&0x0FFF)
	case op&0xF0FF == 0xF007:
		return fmt.Sprintf("V%X, DT", x)
	case op&0xF0FF == 0xF00A:
		return fmt.Sprintf("V%X, K", x)
	case op&0xF0FF == 0xF015:
		return fmt.Sprintf("DT, V%X", x)
	case op&0xF0FF == 0xF018:
		return fmt.Sprintf("ST, V%X", x)
	case op&0xF0FF == 0xF029:
		return fmt.Sprintf("F, V%X", x)
	case op&0xF0FF == 0xF033:
		return fmt.Sprintf("B, V%X", x)
	case op&0xF0FF == 0xF055:
		return fmt.Sprintf("[I], V%X", x)
	case op&0xF0FF == 0xF065:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}
