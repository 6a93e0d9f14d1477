package main

import (
	"errors"
	"fmt"

	"github.com/projectdiscovery/gologger"
	"golang.org/x/sys/unix"
)

// outcome is the result of one resolution strategy.
type outcome int

const (
	// outcomeFound: exactly one eligible interface.
	outcomeFound outcome = iota
	// outcomeNotFound: the strategy ran to completion and the answer is
	// "none" or "ambiguous". Resolution stops here.
	outcomeNotFound
	// outcomeUnsupported: the mechanism itself is unavailable or failed.
	// The next strategy is tried.
	outcomeUnsupported
)

func (o outcome) String() string {
	switch o {
	case outcomeFound:
		return "found"
	case outcomeNotFound:
		return "not found"
	default:
		return "unsupported"
	}
}

// strategy discovers an interface by one mechanism. An empty name asks for
// the single eligible interface on the system. A non-nil error alongside
// outcomeNotFound is fatal; alongside outcomeUnsupported it only explains
// why the mechanism was unavailable.
type strategy interface {
	Name() string
	Resolve(name string) (*Interface, outcome, error)
}

// Resolver tries its strategies in order until one gives a definitive answer.
type Resolver struct {
	strategies []strategy
}

func NewResolver() *Resolver {
	return &Resolver{strategies: []strategy{
		newNetlinkStrategy(),
		newSysfsStrategy(),
		newIoctlStrategy(),
	}}
}

func (r *Resolver) Resolve(name string) (*Interface, error) {
	var failures []error

	for _, s := range r.strategies {
		ifi, res, err := s.Resolve(name)
		gologger.Debug().Str("strategy", s.Name()).Msgf("interface lookup: %s", res)

		switch res {
		case outcomeFound:
			return ifi, nil
		case outcomeNotFound:
			if err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("invalid interface %s: %w", displayName(name), ErrNoInterface)
		default:
			if err != nil {
				gologger.Debug().Str("strategy", s.Name()).Msgf("unavailable: %v", err)
				failures = append(failures, fmt.Errorf("%s: %w", s.Name(), err))
			}
		}
	}

	err := errors.Join(failures...)
	if err == nil {
		err = errors.New("no discovery mechanism available")
	}
	return nil, sysError("find device", err)
}

// checkIfFlags rejects interfaces that are down, loopback or NOARP. When the
// interface was named by the caller the rejection is an EligibilityError,
// otherwise the candidate is silently skipped.
func checkIfFlags(flags uint32, fatal bool, name string) (bool, error) {
	reason := ""
	switch {
	case flags&unix.IFF_UP == 0:
		reason = "down"
	case flags&(unix.IFF_NOARP|unix.IFF_LOOPBACK) != 0:
		reason = "not ARPable"
	default:
		return true, nil
	}

	if fatal {
		return false, &EligibilityError{Name: name, Reason: reason}
	}
	return false, nil
}

func displayName(name string) string {
	if name == "" {
		return "(any)"
	}
	return name
}
