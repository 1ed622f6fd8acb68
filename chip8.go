// Package main implements a CHIP-8 emulator with a window and a terminal
// frontend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"meszarosd.hu/gochip8/internal/config"
	"meszarosd.hu/gochip8/internal/cpu"
)

//https://tobiasvl.github.io/blog/write-a-chip-8-emulator/

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// frontend owns the display and input of a running machine.
type frontend interface {
	Screen() cpu.Display
	Run(ctx context.Context, machine *cpu.Cpu) error
}

func main() {
	opts, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "%s\n", usageErr)
			usageErr.ShowUsage(os.Stderr)
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	if err := run(logger, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(logger *log.Logger, opts config.Options) error {
	rom, err := os.ReadFile(opts.ROM)
	if err != nil {
		return fmt.Errorf("reading rom '%s': %w", opts.ROM, err)
	}

	if opts.Disasm {
		return cpu.DisassembleROM(os.Stdout, rom)
	}

	logger.Info("chip8", log.String("version", buildinfo.Version(version, commit, date)))
	logger.Info("Loading ROM",
		log.String("file", opts.ROM),
		log.String("frontend", opts.Frontend))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keypad := cpu.NewKeypad()

	var fe frontend
	switch opts.Frontend {
	case config.FrontendTerminal:
		fe = NewTerminal(logger, opts, keypad)
	default:
		fe = NewWindow(logger, opts, keypad)
	}

	machine := cpu.New(keypad, fe.Screen(), cpu.Options{
		Debug: opts.Debug,
		Trace: func(msg string) { logger.Debug(msg) },
		Rand:  newRand(opts.Seed),
	})
	if err := machine.LoadROM(rom); err != nil {
		return fmt.Errorf("loading rom '%s': %w", opts.ROM, err)
	}

	if err := fe.Run(ctx, machine); err != nil {
		if cpu.IsFatal(err) {
			writeDump(logger, machine, os.Stderr)
		}
		return err
	}

	logger.Info("Emulation stopped", log.Uint16("pc", machine.PC()))
	return nil
}

// writeDump writes the post-mortem dump of a halted machine. A failed write
// is logged, the fault itself is still reported by the caller.
func writeDump(logger *log.Logger, machine *cpu.Cpu, w io.Writer) bool {
	if err := machine.Dump(w); err != nil {
		logger.Error("Writing dump failed", log.Err(err))
		return false
	}
	return true
}

// newRand returns nil for seed 0, which lets the machine seed from the clock.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}
