package main

import (
	"errors"
)

var errNameRequired = errors.New("interface name required")

// ifreqQuerier queries a single named device through ioctl(2).
type ifreqQuerier interface {
	Flags(name string) (uint32, error)
	Index(name string) (int, error)
	Close() error
}

// ioctlStrategy is the last resort: it cannot enumerate, only look up the
// device the caller named.
type ioctlStrategy struct {
	open func() (ifreqQuerier, error)
}

func newIoctlStrategy() *ioctlStrategy {
	return &ioctlStrategy{open: openIfreqQuerier}
}

func (s *ioctlStrategy) Name() string { return "ioctl" }

func (s *ioctlStrategy) Resolve(name string) (*Interface, outcome, error) {
	if name == "" {
		return nil, outcomeUnsupported, errNameRequired
	}

	q, err := s.open()
	if err != nil {
		return nil, outcomeUnsupported, err
	}
	defer q.Close()

	flags, err := q.Flags(name)
	if err != nil {
		return nil, outcomeUnsupported, err
	}
	if _, err := checkIfFlags(flags, true, name); err != nil {
		return nil, outcomeNotFound, err
	}

	index, err := q.Index(name)
	if err != nil {
		return nil, outcomeUnsupported, err
	}
	if index == 0 {
		return nil, outcomeNotFound, nil
	}

	return &Interface{Name: name, Index: index, Flags: flags}, outcomeFound, nil
}
