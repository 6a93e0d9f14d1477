//go:build !linux

package main

import (
	"errors"
	"runtime"
)

func openIfreqQuerier() (ifreqQuerier, error) {
	return nil, errors.New("interface ioctls not supported on " + runtime.GOOS)
}
