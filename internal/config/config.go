// Package config handles command line options and logger setup.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
)

const (
	FrontendWindow   = "window"
	FrontendTerminal = "term"
)

// Options holds everything the command line configures.
type Options struct {
	ROM      string
	Frontend string
	Hz       int
	Scale    int
	Seed     int64

	Debug  bool
	Quiet  bool
	Paused bool
	Disasm bool
}

// UsageError is returned for command lines that can not be run.
type UsageError struct {
	msg   string
	flags *flag.FlagSet
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: chip8 [options] <rom file>\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
}

// ParseFlags parses the arguments following the program name.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := Options{}
	flags.StringVar(&opts.Frontend, "frontend", FrontendWindow, "frontend to run the rom in: window or term")
	flags.IntVar(&opts.Hz, "hz", 500, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixels per display pixel")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 seeds from the clock")
	flags.BoolVar(&opts.Debug, "debug", false, "trace every executed instruction")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Paused, "paused", false, "start paused, P resumes and N steps one instruction")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a listing of the rom and exit")

	usage := func(msg string) error {
		return &UsageError{msg: msg, flags: flags}
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, usage("help requested")
		}
		return opts, usage(err.Error())
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return opts, usage("expected exactly one rom file")
	}
	opts.ROM = rest[0]

	switch opts.Frontend {
	case FrontendWindow, FrontendTerminal:
	default:
		return opts, usage(fmt.Sprintf("unsupported frontend '%s'", opts.Frontend))
	}
	if opts.Hz <= 0 {
		return opts, usage("hz must be positive")
	}
	if opts.Scale <= 0 {
		return opts, usage("scale must be positive")
	}
	return opts, nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
