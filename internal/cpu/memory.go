package cpu

import "fmt"

// CHIP-8 memory map:
//
//	0x000-0x01F: call stack, 16 big-endian return addresses
//	0x020-0x06F: built-in font, 16 glyphs of 5 bytes
//	0x070-0x1FF: unused, zero
//	0x200-0xFFF: program and work RAM
const (
	MemorySize   = 0x1000
	StackBase    = 0x00
	StackSize    = 0x20
	FontBase     = 0x20
	GlyphSize    = 5
	ProgramStart = 0x200
	MaxROMSize   = MemorySize - ProgramStart
)

var font = [16 * GlyphSize]byte{
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

type Memory [MemorySize]byte

// InitMemory returns zeroed memory with the font in place.
func InitMemory() Memory {
	var m Memory
	copy(m[FontBase:], font[:])
	return m
}

// Read returns a copy of n bytes starting at addr.
func (m *Memory) Read(addr uint16, n int) ([]byte, error) {
	if err := checkRange(addr, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, m[addr:int(addr)+n])
	return out, nil
}

// checkRange validates that n bytes starting at addr are addressable.
func checkRange(addr uint16, n int) error {
	if n < 0 || int(addr)+n > MemorySize {
		return fmt.Errorf("%w: $%04X+%d", ErrAddressRange, addr, n)
	}
	return nil
}

// checkWritable validates an indexed store of n bytes at addr. The stack and
// font share the reserved low region and are never program writable.
func checkWritable(addr uint16, n int) error {
	if addr < ProgramStart {
		return fmt.Errorf("%w: $%03X", ErrReservedWrite, addr)
	}
	return checkRange(addr, n)
}
