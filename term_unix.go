//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package main

import (
	"golang.org/x/sys/unix"
)

type termState struct {
	termios unix.Termios
}

// makeRaw disables echo and line buffering on fd. Reads return after at most
// a tenth of a second even without input.
func makeRaw(fd int) (*termState, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, err
	}

	state := &termState{termios: *termios}
	raw := *termios

	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8

	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return nil, err
	}
	return state, nil
}

func restoreTerm(fd int, state *termState) error {
	return unix.IoctlSetTermios(fd, ioctlWriteTermios, &state.termios)
}
