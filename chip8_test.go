package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"meszarosd.hu/gochip8/internal/config"
	"meszarosd.hu/gochip8/internal/cpu"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func newHaltedMachine(t *testing.T) *cpu.Cpu {
	t.Helper()
	machine := cpu.New(cpu.NewKeypad(), &TerminalDisplay{}, cpu.Options{})
	assert.NoError(t, machine.LoadROM([]byte{0x01, 0x23}))
	assert.True(t, cpu.IsFatal(machine.Step()))
	return machine
}

func TestWriteDump(t *testing.T) {
	machine := newHaltedMachine(t)

	var buf bytes.Buffer
	assert.True(t, writeDump(log.NewTestLogger(t), machine, &buf))
	assert.Contains(t, buf.String(), "---Fault---")
}

func TestWriteDumpFailure(t *testing.T) {
	machine := newHaltedMachine(t)

	assert.False(t, writeDump(config.CreateLogger(false, true), machine, failingWriter{}))
}
