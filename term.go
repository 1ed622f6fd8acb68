package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/log"

	"meszarosd.hu/gochip8/internal/config"
	"meszarosd.hu/gochip8/internal/cpu"
)

// terminals report key presses but no releases, a key counts as held until
// no byte for it arrived for keyHold.
const keyHold = 150 * time.Millisecond

const (
	keyEscape = 0x1B
	keyPause  = 'p'
	keyStep   = 'n'
)

var terminalKeys = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// TerminalDisplay keeps the latest bitmap until the terminal loop renders it.
type TerminalDisplay struct {
	bitmap cpu.Bitmap
	dirty  bool
}

func (d *TerminalDisplay) Draw(bitmap cpu.Bitmap) {
	d.bitmap = bitmap
	d.dirty = true
}

// Terminal runs the machine in a terminal switched to raw mode, rendering two
// pixel rows per text line with half block characters.
type Terminal struct {
	logger   *log.Logger
	display  *TerminalDisplay
	keypad   *cpu.Keypad
	in       *os.File
	out      *bufio.Writer
	interval time.Duration
	paused   bool

	lastSeen [cpu.KeyCount]time.Time
	beeping  bool
}

func NewTerminal(logger *log.Logger, opts config.Options, keypad *cpu.Keypad) *Terminal {
	return &Terminal{
		logger:   logger,
		display:  &TerminalDisplay{},
		keypad:   keypad,
		in:       os.Stdin,
		out:      bufio.NewWriter(os.Stdout),
		interval: time.Second / time.Duration(opts.Hz),
		paused:   opts.Paused,
	}
}

// Screen returns the display the machine draws to.
func (t *Terminal) Screen() cpu.Display {
	return t.display
}

func (t *Terminal) Run(ctx context.Context, machine *cpu.Cpu) error {
	fd := int(t.in.Fd())
	state, err := makeRaw(fd)
	if err != nil {
		return fmt.Errorf("switching terminal to raw mode: %w", err)
	}
	defer func() {
		fmt.Fprint(t.out, "\033[?25h\r\n")
		_ = t.out.Flush()
		if err := restoreTerm(fd, state); err != nil {
			t.logger.Error("Restoring terminal failed", log.Err(err))
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := make(chan byte, 64)
	go readInput(ctx, t.in, input)

	fmt.Fprint(t.out, "\033[?25l\033[2J")
	t.display.dirty = true
	if err := t.render(); err != nil {
		return err
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case b := <-input:
			quit, step := t.handleKey(b, time.Now())
			if quit {
				return nil
			}
			if step {
				if err := t.step(machine); err != nil {
					return err
				}
			}

		case now := <-ticker.C:
			t.releaseStaleKeys(now)
			if !t.paused {
				if err := t.step(machine); err != nil {
					return err
				}
			}
		}
	}
}

// step executes one instruction and brings the terminal up to date.
func (t *Terminal) step(machine *cpu.Cpu) error {
	if err := machine.Step(); err != nil {
		return err
	}

	if machine.SoundTimer() > 0 {
		if !t.beeping {
			t.out.WriteByte('\a')
			t.beeping = true
		}
	} else {
		t.beeping = false
	}

	return t.render()
}

// render writes the latest bitmap if it changed since the last frame.
func (t *Terminal) render() error {
	if t.display.dirty {
		t.display.dirty = false
		t.out.WriteString("\033[H")
		t.out.WriteString(renderBitmap(t.display.bitmap))
	}
	return t.out.Flush()
}

// handleKey applies one input byte. It reports whether the user asked to
// quit or to execute a single instruction while paused.
func (t *Terminal) handleKey(b byte, now time.Time) (quit, step bool) {
	switch b {
	case keyEscape:
		return true, false
	case keyPause:
		t.paused = !t.paused
		return false, false
	case keyStep:
		return false, t.paused
	}

	if key, ok := terminalKeys[b]; ok {
		t.keypad.Press(key)
		t.lastSeen[key] = now
	}
	return false, false
}

func (t *Terminal) releaseStaleKeys(now time.Time) {
	for key, seen := range t.lastSeen {
		if !seen.IsZero() && now.Sub(seen) >= keyHold {
			t.keypad.Release(uint8(key))
			t.lastSeen[key] = time.Time{}
		}
	}
}

// renderBitmap draws the bitmap as ScreenHeight/2 lines of text.
func renderBitmap(bitmap cpu.Bitmap) string {
	var b strings.Builder
	for y := 0; y < cpu.ScreenHeight; y += 2 {
		for x := range cpu.ScreenWidth {
			top, bottom := bitmap.Pixel(x, y), bitmap.Pixel(x, y+1)
			switch {
			case top && bottom:
				b.WriteString("█")
			case top:
				b.WriteString("▀")
			case bottom:
				b.WriteString("▄")
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString("\r\n")
	}
	return b.String()
}

// readInput forwards bytes from r until the context is cancelled. The raw
// terminal returns from reads periodically without data, which os.File
// reports as io.EOF.
func readInput(ctx context.Context, r io.Reader, input chan<- byte) {
	buf := make([]byte, 16)
	for ctx.Err() == nil {
		n, err := r.Read(buf)
		for _, b := range stripEscapes(buf[:n]) {
			select {
			case input <- b:
			case <-ctx.Done():
				return
			}
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return
		}
	}
}

// stripEscapes removes the escape sequences that arrow and function keys
// send. Only an ESC that ends the chunk is kept, that is a bare Escape key.
func stripEscapes(chunk []byte) []byte {
	out := make([]byte, 0, len(chunk))
	for i := 0; i < len(chunk); i++ {
		if chunk[i] != keyEscape {
			out = append(out, chunk[i])
			continue
		}
		if i == len(chunk)-1 {
			out = append(out, keyEscape)
			break
		}

		switch chunk[i+1] {
		case '[':
			// CSI: parameters up to a final byte in 0x40..0x7E
			i += 2
			for i < len(chunk) && (chunk[i] < 0x40 || chunk[i] > 0x7E) {
				i++
			}
		case 'O':
			// SS3: one more byte, F1-F4 on most terminals
			i += 2
		default:
			// Alt+key
			i++
		}
	}
	return out
}
