package cpu

import (
	"fmt"
	"io"
)

// Disassemble returns the assembler mnemonic of an opcode. Words that are no
// instruction are rendered as a data word.
func Disassemble(opcode uint16) string {
	op := Decode(opcode)
	x, y := op.x, op.y

	switch op.opcode {
	case OP_CLEAR:
		return "CLS"
	case OP_RET:
		return "RET"
	case OP_JMP:
		return fmt.Sprintf("JP $%03X", op.nnn)
	case OP_JMP_OFF:
		return fmt.Sprintf("JP V0, $%03X", op.nnn)
	case OP_SUBROUTINE:
		return fmt.Sprintf("CALL $%03X", op.nnn)
	case OP_EQUAL:
		return fmt.Sprintf("SE V%X, $%02X", x, op.nn)
	case OP_NEQUAL:
		return fmt.Sprintf("SNE V%X, $%02X", x, op.nn)
	case OP_REG_EQUAL:
		return fmt.Sprintf("SE V%X, V%X", x, y)
	case OP_REG_NEQUAL:
		return fmt.Sprintf("SNE V%X, V%X", x, y)
	case OP_REG_SET:
		return fmt.Sprintf("LD V%X, $%02X", x, op.nn)
	case OP_REG_ADD:
		return fmt.Sprintf("ADD V%X, $%02X", x, op.nn)
	case OP_REG_SET_REG:
		return fmt.Sprintf("LD V%X, V%X", x, y)
	case OP_OR:
		return fmt.Sprintf("OR V%X, V%X", x, y)
	case OP_AND:
		return fmt.Sprintf("AND V%X, V%X", x, y)
	case OP_XOR:
		return fmt.Sprintf("XOR V%X, V%X", x, y)
	case OP_ADD_EQUAL:
		return fmt.Sprintf("ADD V%X, V%X", x, y)
	case OP_SUB:
		return fmt.Sprintf("SUB V%X, V%X", x, y)
	case OP_RSHIFT:
		return fmt.Sprintf("SHR V%X, V%X", x, y)
	case OP_SUB_INV:
		return fmt.Sprintf("SUBN V%X, V%X", x, y)
	case OP_LSHIFT:
		return fmt.Sprintf("SHL V%X, V%X", x, y)
	case OP_SET_IDX:
		return fmt.Sprintf("LD I, $%03X", op.nnn)
	case OP_RANDOM:
		return fmt.Sprintf("RND V%X, $%02X", x, op.nn)
	case OP_DISPLAY:
		return fmt.Sprintf("DRW V%X, V%X, $%X", x, y, op.n)
	case OP_KEY_PRESSED:
		return fmt.Sprintf("SKP V%X", x)
	case OP_KEY_NOT_PRESSED:
		return fmt.Sprintf("SKNP V%X", x)
	case OP_GET_DTIMER:
		return fmt.Sprintf("LD V%X, DT", x)
	case OP_GET_KEY:
		return fmt.Sprintf("LD V%X, K", x)
	case OP_SET_DTIMER:
		return fmt.Sprintf("LD DT, V%X", x)
	case OP_SET_STIMER:
		return fmt.Sprintf("LD ST, V%X", x)
	case OP_ADD_IDX:
		return fmt.Sprintf("ADD I, V%X", x)
	case OP_FONT:
		return fmt.Sprintf("LD F, V%X", x)
	case OP_BCD:
		return fmt.Sprintf("LD B, V%X", x)
	case OP_STORE_MEM:
		return fmt.Sprintf("LD [I], V%X", x)
	case OP_LOAD_MEM:
		return fmt.Sprintf("LD V%X, [I]", x)
	}
	return fmt.Sprintf("DW $%04X", opcode)
}

// DisassembleROM writes a linear listing of a program image, addressed from
// the program start. A trailing odd byte is listed as a data byte.
func DisassembleROM(w io.Writer, rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	for offset := 0; offset+1 < len(rom); offset += 2 {
		opcode := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		if _, err := fmt.Fprintf(w, "$%03X  %04X  %s\n", ProgramStart+offset, opcode, Disassemble(opcode)); err != nil {
			return err
		}
	}

	if len(rom)%2 == 1 {
		last := len(rom) - 1
		if _, err := fmt.Fprintf(w, "$%03X  %02X    DB $%02X\n", ProgramStart+last, rom[last], rom[last]); err != nil {
			return err
		}
	}
	return nil
}
