package cpu

// push stores a return address in the stack region of memory.
func (c *Cpu) push(addr uint16) error {
	if c.sp >= StackBase+StackSize {
		return ErrStackOverflow
	}
	c.memory[c.sp] = byte(addr >> 8)
	c.memory[c.sp+1] = byte(addr)
	c.sp += 2
	return nil
}

func (c *Cpu) pop() (uint16, error) {
	if c.sp == StackBase {
		return 0, ErrStackUnderflow
	}
	c.sp -= 2
	return uint16(c.memory[c.sp])<<8 | uint16(c.memory[c.sp+1]), nil
}

// Stack returns the pending return addresses, innermost last.
func (c *Cpu) Stack() []uint16 {
	frames := make([]uint16, 0, c.sp/2)
	for i := uint16(StackBase); i < c.sp; i += 2 {
		frames = append(frames, uint16(c.memory[i])<<8|uint16(c.memory[i+1]))
	}
	return frames
}
