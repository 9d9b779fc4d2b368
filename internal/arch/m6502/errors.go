package m6502

import (
	"errors"
	"fmt"
)

// ErrIllegalOpcode is returned by Step for opcode bytes that the processor
// can not execute.
var ErrIllegalOpcode = errors.New("illegal opcode")

// IllegalOpcodeError details an illegal opcode and where it was fetched from.
type IllegalOpcodeError struct {
	Opcode  byte
	Address uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode $%02X at $%04X", e.Opcode, e.Address)
}

func (e *IllegalOpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}
