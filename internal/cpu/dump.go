package cpu

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Dump writes the complete machine state for post-mortem inspection:
// registers, call stack, the faulting instruction if any and all of memory.
func (c *Cpu) Dump(w io.Writer) error {
	var b strings.Builder

	b.WriteString("---Registers---\n")
	for i, v := range c.regs {
		fmt.Fprintf(&b, "V%X: $%02X", i, v)
		if i%4 == 3 {
			b.WriteByte('\n')
		} else {
			b.WriteString("  ")
		}
	}
	fmt.Fprintf(&b, "I: $%03X  PC: $%03X  SP: $%02X  DT: $%02X  ST: $%02X\n",
		c.i, c.pc, c.sp, c.delayTimer, c.soundTimer)
	fmt.Fprintf(&b, "cycles: %d\n", c.cycle)

	b.WriteString("---Stack---\n")
	frames := c.Stack()
	if len(frames) == 0 {
		b.WriteString("empty\n")
	}
	for i, addr := range frames {
		fmt.Fprintf(&b, "#%02d: $%03X\n", i, addr)
	}

	if c.fault != nil {
		b.WriteString("---Fault---\n")
		fmt.Fprintf(&b, "$%03X  %04X  %s: %v\n",
			c.fault.Address, c.fault.Opcode, Disassemble(c.fault.Opcode), c.fault.Err)
		fmt.Fprintf(&b, "decoded: %s\n", Decode(c.fault.Opcode))
	}

	b.WriteString("---Memory---\n")
	b.WriteString(hex.Dump(c.memory[:]))

	_, err := io.WriteString(w, b.String())
	return err
}
