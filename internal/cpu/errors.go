package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("return with empty stack")
	ErrReservedJump   = errors.New("jump to reserved address")
	ErrReservedWrite  = errors.New("write to reserved memory")
	ErrAddressRange   = errors.New("address out of range")
	ErrInvalidKey     = errors.New("invalid key")
	ErrROMTooLarge    = errors.New("rom does not fit into memory")
	ErrHalted         = errors.New("machine halted")
)

// FatalError is returned by Step for any condition the program cannot
// continue from. The machine keeps the state it had before the faulting
// instruction, with the program counter pointing at that instruction.
type FatalError struct {
	Err     error
	Opcode  uint16
	Address uint16
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal at $%03X (opcode %04X): %v", e.Address, e.Opcode, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
