package chip8

import (
	"errors"
	"fmt"
)

// Faults are fatal: the interpreter never recovers or retries, the run
// stops and the failing opcode and address are reported to the caller.
var (
	ErrROMTooLarge       = errors.New("ROM too large")
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrStackOverflow     = errors.New("call stack overflow")
	ErrStackUnderflow    = errors.New("call stack underflow")
	ErrAddressOutOfRange = errors.New("address out of range")
)

// opFault wraps a fault with the opcode and the address it was fetched from.
func opFault(err error, op, addr uint16) error {
	return fmt.Errorf("%w: opcode 0x%04X at 0x%03X", err, op, addr)
}
