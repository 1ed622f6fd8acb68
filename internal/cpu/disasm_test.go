package cpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	op := Decode(0xD12F)
	assert.Equal(t, OP_DISPLAY, op.opcode)
	assert.Equal(t, byte(0x1), op.x)
	assert.Equal(t, byte(0x2), op.y)
	assert.Equal(t, byte(0xF), op.n)
	assert.Equal(t, uint8(0x2F), op.nn)
	assert.Equal(t, uint16(0x12F), op.nnn)
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1234, "JP $234"},
		{0x2ABC, "CALL $ABC"},
		{0x3A1F, "SE VA, $1F"},
		{0x4B20, "SNE VB, $20"},
		{0x5120, "SE V1, V2"},
		{0x6C7F, "LD VC, $7F"},
		{0x7D01, "ADD VD, $01"},
		{0x8120, "LD V1, V2"},
		{0x8121, "OR V1, V2"},
		{0x8122, "AND V1, V2"},
		{0x8123, "XOR V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8125, "SUB V1, V2"},
		{0x8126, "SHR V1, V2"},
		{0x8127, "SUBN V1, V2"},
		{0x812E, "SHL V1, V2"},
		{0x9340, "SNE V3, V4"},
		{0xA2F0, "LD I, $2F0"},
		{0xB300, "JP V0, $300"},
		{0xC50F, "RND V5, $0F"},
		{0xD015, "DRW V0, V1, $5"},
		{0xE79E, "SKP V7"},
		{0xE7A1, "SKNP V7"},
		{0xF107, "LD V1, DT"},
		{0xF20A, "LD V2, K"},
		{0xF315, "LD DT, V3"},
		{0xF418, "LD ST, V4"},
		{0xF51E, "ADD I, V5"},
		{0xF629, "LD F, V6"},
		{0xF733, "LD B, V7"},
		{0xF855, "LD [I], V8"},
		{0xF965, "LD V9, [I]"},
		{0x0000, "DW $0000"},
		{0x5121, "DW $5121"},
		{0xFFFF, "DW $FFFF"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Disassemble(tt.opcode))
	}
}

func TestDisassembleROM(t *testing.T) {
	var buf bytes.Buffer
	err := DisassembleROM(&buf, []byte{0x00, 0xE0, 0x12, 0x00, 0xAB})
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"$200  00E0  CLS",
		"$202  1200  JP $200",
		"$204  AB    DB $AB",
	}, lines)
}

func TestDisassembleROMTooLarge(t *testing.T) {
	var buf bytes.Buffer
	err := DisassembleROM(&buf, make([]byte, MaxROMSize+2))
	assert.True(t, errors.Is(err, ErrROMTooLarge))
	assert.Equal(t, 0, buf.Len())
}
