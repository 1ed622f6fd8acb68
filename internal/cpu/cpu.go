// Package cpu implements the CHIP-8 interpreter: memory and register model,
// call stack, opcode dispatch and the sprite blitter. Input and output go
// through the Keyboard and Display capabilities handed to New.
package cpu

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// timers decay once every timerPeriod executed instructions, roughly 60 Hz
// at the usual 500 instructions per second.
const timerPeriod = 8

// Options configures a Cpu.
type Options struct {
	// Debug enables the instruction trace.
	Debug bool
	// Trace receives one line per executed instruction when Debug is set.
	Trace func(msg string)
	// Rand is the source for CXNN, a time seeded source is used if nil.
	Rand *rand.Rand
}

type Cpu struct {
	pc         uint16
	i          uint16
	sp         uint16
	delayTimer uint8
	soundTimer uint8
	regs       [0x10]uint8
	cycle      uint64

	memory  Memory
	display Bitmap

	keyboard Keyboard
	screen   Display
	rand     *rand.Rand
	options  Options

	fault *FatalError
}

// New returns a machine with the font loaded and the program counter at the
// program start. The blank display is drawn once.
func New(keyboard Keyboard, screen Display, options Options) *Cpu {
	c := &Cpu{
		pc:       ProgramStart,
		memory:   InitMemory(),
		keyboard: keyboard,
		screen:   screen,
		rand:     options.Rand,
		options:  options,
	}
	if c.rand == nil {
		c.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c.screen.Draw(c.display)
	return c
}

// LoadROM copies a program image to the program start. Images that do not
// fit below the end of memory are rejected without touching memory.
func (c *Cpu) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(c.memory[ProgramStart:], rom)
	return nil
}

func (c *Cpu) V(reg uint8) uint8 {
	return c.regs[reg&0xF]
}

func (c *Cpu) I() uint16 {
	return c.i
}

func (c *Cpu) PC() uint16 {
	return c.pc
}

func (c *Cpu) SP() uint16 {
	return c.sp
}

func (c *Cpu) DelayTimer() uint8 {
	return c.delayTimer
}

func (c *Cpu) SoundTimer() uint8 {
	return c.soundTimer
}

// Cycles returns the number of instructions executed.
func (c *Cpu) Cycles() uint64 {
	return c.cycle
}

func (c *Cpu) Bitmap() Bitmap {
	return c.display
}

// ReadMemory returns a copy of n bytes of memory starting at addr.
func (c *Cpu) ReadMemory(addr uint16, n int) ([]byte, error) {
	return c.memory.Read(addr, n)
}

// Halted returns the error that stopped the machine, or nil.
func (c *Cpu) Halted() *FatalError {
	return c.fault
}

// Fetch reads the big-endian opcode at the program counter and advances the
// counter past it.
func (c *Cpu) Fetch() (uint16, error) {
	if err := checkRange(c.pc, 2); err != nil {
		return 0, err
	}
	opcode := uint16(c.memory[c.pc])<<8 | uint16(c.memory[c.pc+1])
	c.pc += 2
	return opcode, nil
}

// Step executes exactly one instruction. Any error it returns is a
// *FatalError, or wraps ErrHalted once the machine has stopped.
func (c *Cpu) Step() error {
	if c.fault != nil {
		return fmt.Errorf("%w: %w", ErrHalted, c.fault)
	}

	address := c.pc
	opcode, err := c.Fetch()
	if err != nil {
		return c.halt(err, 0, address)
	}

	if c.options.Debug && c.options.Trace != nil {
		c.options.Trace(fmt.Sprintf("%03X: %04X  %s", address, opcode, Disassemble(opcode)))
	}

	if err := c.Execute(Decode(opcode)); err != nil {
		c.pc = address
		return c.halt(err, opcode, address)
	}

	if c.cycle%timerPeriod == 0 {
		if c.delayTimer > 0 {
			c.delayTimer--
		}
		if c.soundTimer > 0 {
			c.soundTimer--
		}
	}
	c.cycle++
	return nil
}

func (c *Cpu) halt(err error, opcode, address uint16) error {
	c.fault = &FatalError{Err: err, Opcode: opcode, Address: address}
	return c.fault
}

func (c *Cpu) skipIf(condition bool) {
	if condition {
		c.pc += 2
	}
}

func (c *Cpu) checkJump(addr uint16) error {
	if addr < ProgramStart {
		return fmt.Errorf("%w: $%03X", ErrReservedJump, addr)
	}
	return nil
}

func (c *Cpu) checkKey(key uint8) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	return nil
}

// Execute applies a decoded operation. The program counter is expected to
// already point past the instruction. All checks run before any state is
// changed.
func (c *Cpu) Execute(operation Operation) error {
	x, y := operation.x, operation.y

	switch operation.opcode {
	case OP_CLEAR:
		c.display.clear()
		c.screen.Draw(c.display)
	case OP_RET:
		addr, err := c.pop()
		if err != nil {
			return err
		}
		c.pc = addr
	case OP_JMP, OP_JMP_OFF:
		// BNNN does not add V0
		if err := c.checkJump(operation.nnn); err != nil {
			return err
		}
		c.pc = operation.nnn
	case OP_SUBROUTINE:
		if err := c.checkJump(operation.nnn); err != nil {
			return err
		}
		if err := c.push(c.pc); err != nil {
			return err
		}
		c.pc = operation.nnn
	case OP_EQUAL:
		c.skipIf(c.regs[x] == operation.nn)
	case OP_NEQUAL:
		c.skipIf(c.regs[x] != operation.nn)
	case OP_REG_EQUAL:
		c.skipIf(c.regs[x] == c.regs[y])
	case OP_REG_NEQUAL:
		c.skipIf(c.regs[x] != c.regs[y])
	case OP_REG_SET:
		c.regs[x] = operation.nn
	case OP_REG_ADD:
		c.regs[x] += operation.nn
	case OP_REG_SET_REG:
		c.regs[x] = c.regs[y]
	case OP_OR:
		c.regs[x] |= c.regs[y]
	case OP_AND:
		c.regs[x] &= c.regs[y]
	case OP_XOR:
		c.regs[x] ^= c.regs[y]

	// The flag is written before the result, so VF as destination ends up
	// holding the result.
	case OP_ADD_EQUAL:
		sum := c.regs[x] + c.regs[y]
		c.regs[0xF] = flag(sum < c.regs[x])
		c.regs[x] = sum
	case OP_SUB:
		diff := c.regs[x] - c.regs[y]
		c.regs[0xF] = flag(diff <= c.regs[x])
		c.regs[x] = diff
	case OP_SUB_INV:
		diff := c.regs[y] - c.regs[x]
		c.regs[0xF] = flag(diff <= c.regs[y])
		c.regs[x] = diff
	case OP_RSHIFT:
		vy := c.regs[y]
		c.regs[0xF] = vy & 0x1
		c.regs[x] = vy >> 1
	case OP_LSHIFT:
		vy := c.regs[y]
		c.regs[0xF] = vy >> 7
		c.regs[x] = vy << 1

	case OP_SET_IDX:
		c.i = operation.nnn
	case OP_RANDOM:
		c.regs[x] = uint8(c.rand.Intn(256)) & operation.nn
	case OP_DISPLAY:
		sprite, err := c.memory.Read(c.i, int(operation.n))
		if err != nil {
			return err
		}
		collision := c.display.drawSprite(c.regs[x], c.regs[y], sprite)
		c.regs[0xF] = flag(collision)
		c.screen.Draw(c.display)
	case OP_KEY_PRESSED, OP_KEY_NOT_PRESSED:
		key := c.regs[x]
		if err := c.checkKey(key); err != nil {
			return err
		}
		pressed := c.keyboard.IsPressed(key)
		c.skipIf(pressed == (operation.opcode == OP_KEY_PRESSED))
	case OP_GET_DTIMER:
		c.regs[x] = c.delayTimer
	case OP_GET_KEY:
		if key, ok := c.keyboard.PressedKey(); ok && key < KeyCount {
			c.regs[x] = key
		} else {
			c.pc -= 2
		}
	case OP_SET_DTIMER:
		c.delayTimer = c.regs[x]
	case OP_SET_STIMER:
		c.soundTimer = c.regs[x]
	case OP_ADD_IDX:
		c.i += uint16(c.regs[x])
	case OP_FONT:
		c.i = FontBase + uint16(c.regs[x])*GlyphSize
	case OP_BCD:
		// I is left unchanged
		if err := checkWritable(c.i, 3); err != nil {
			return err
		}
		num := c.regs[x]
		c.memory[c.i] = num / 100
		c.memory[c.i+1] = (num / 10) % 10
		c.memory[c.i+2] = num % 10
	case OP_STORE_MEM:
		if err := checkWritable(c.i, int(x)+1); err != nil {
			return err
		}
		for reg := range x + 1 {
			c.memory[c.i] = c.regs[reg]
			c.i++
		}
	case OP_LOAD_MEM:
		if err := checkRange(c.i, int(x)+1); err != nil {
			return err
		}
		for reg := range x + 1 {
			c.regs[reg] = c.memory[c.i]
			c.i++
		}
	default:
		return fmt.Errorf("%w: %04X", ErrUnknownOpcode, operation.opcodeHex)
	}
	return nil
}

func flag(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}

// IsFatal reports whether err stopped the machine.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}
