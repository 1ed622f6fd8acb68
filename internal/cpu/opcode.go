package cpu

import "fmt"

// Operation is a decoded instruction word. Every field is extracted for every
// opcode, the executing operation picks the ones it needs.
type Operation struct {
	opcodeHex uint16
	opcode    OPCODE
	x         byte
	y         byte
	n         byte
	nn        uint8
	nnn       uint16
}

type OPCODE int

const (
	OP_NONE            OPCODE = iota //unmatched
	OP_CLEAR                         //00E0
	OP_RET                           //00EE
	OP_JMP                           //1NNN
	OP_SUBROUTINE                    //2NNN
	OP_EQUAL                         //3XNN
	OP_NEQUAL                        //4XNN
	OP_REG_EQUAL                     //5XY0
	OP_REG_SET                       //6XNN
	OP_REG_ADD                       //7XNN
	OP_REG_SET_REG                   //8XY0
	OP_OR                            //8XY1
	OP_AND                           //8XY2
	OP_XOR                           //8XY3
	OP_ADD_EQUAL                     //8XY4
	OP_SUB                           //8XY5
	OP_RSHIFT                        //8XY6
	OP_SUB_INV                       //8XY7
	OP_LSHIFT                        //8XYE
	OP_REG_NEQUAL                    //9XY0
	OP_SET_IDX                       //ANNN
	OP_JMP_OFF                       //BNNN
	OP_RANDOM                        //CXNN
	OP_DISPLAY                       //DXYN
	OP_KEY_PRESSED                   //EX9E
	OP_KEY_NOT_PRESSED               //EXA1
	OP_GET_DTIMER                    //FX07
	OP_GET_KEY                       //FX0A
	OP_SET_DTIMER                    //FX15
	OP_SET_STIMER                    //FX18
	OP_ADD_IDX                       //FX1E
	OP_FONT                          //FX29
	OP_BCD                           //FX33
	OP_STORE_MEM                     //FX55
	OP_LOAD_MEM                      //FX65
)

func (op Operation) String() string {
	return fmt.Sprintf("0x%04X, OPERATION %d, x: 0x%X, y: 0x%X, n: 0x%X, nn: 0x%X, nnn: 0x%X",
		op.opcodeHex, op.opcode, op.x, op.y, op.n, op.nn, op.nnn)
}

// Decode splits an opcode into its fields and resolves the operation it
// encodes. Words that match no operation decode to OP_NONE.
func Decode(opcode uint16) Operation {
	op := OP_NONE

	switch (opcode & 0xF000) >> 12 {
	case 0x0:
		switch opcode & 0x0FFF {
		case 0x0E0:
			op = OP_CLEAR
		case 0x0EE:
			op = OP_RET
		}
	case 0x1:
		op = OP_JMP
	case 0x2:
		op = OP_SUBROUTINE
	case 0x3:
		op = OP_EQUAL
	case 0x4:
		op = OP_NEQUAL
	case 0x5:
		if opcode&0x000F == 0 {
			op = OP_REG_EQUAL
		}
	case 0x6:
		op = OP_REG_SET
	case 0x7:
		op = OP_REG_ADD
	case 0x8:
		switch opcode & 0x000F {
		case 0x0:
			op = OP_REG_SET_REG
		case 0x1:
			op = OP_OR
		case 0x2:
			op = OP_AND
		case 0x3:
			op = OP_XOR
		case 0x4:
			op = OP_ADD_EQUAL
		case 0x5:
			op = OP_SUB
		case 0x6:
			op = OP_RSHIFT
		case 0x7:
			op = OP_SUB_INV
		case 0xE:
			op = OP_LSHIFT
		}
	case 0x9:
		if opcode&0x000F == 0 {
			op = OP_REG_NEQUAL
		}
	case 0xA:
		op = OP_SET_IDX
	case 0xB:
		op = OP_JMP_OFF
	case 0xC:
		op = OP_RANDOM
	case 0xD:
		op = OP_DISPLAY
	case 0xE:
		switch opcode & 0x00FF {
		case 0x9E:
			op = OP_KEY_PRESSED
		case 0xA1:
			op = OP_KEY_NOT_PRESSED
		}
	case 0xF:
		switch opcode & 0x00FF {
		case 0x07:
			op = OP_GET_DTIMER
		case 0x0A:
			op = OP_GET_KEY
		case 0x15:
			op = OP_SET_DTIMER
		case 0x18:
			op = OP_SET_STIMER
		case 0x1E:
			op = OP_ADD_IDX
		case 0x29:
			op = OP_FONT
		case 0x33:
			op = OP_BCD
		case 0x55:
			op = OP_STORE_MEM
		case 0x65:
			op = OP_LOAD_MEM
		}
	}

	return Operation{
		opcodeHex: opcode,
		opcode:    op,
		x:         byte((opcode & 0x0F00) >> 8),
		y:         byte((opcode & 0x00F0) >> 4),
		n:         byte(opcode & 0x000F),
		nn:        uint8(opcode & 0x00FF),
		nnn:       opcode & 0x0FFF,
	}
}
