//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package main

import "errors"

type termState struct{}

func makeRaw(int) (*termState, error) {
	return nil, errors.New("terminal frontend is not supported on this platform")
}

func restoreTerm(int, *termState) error {
	return nil
}
