package main

import (
	"net"
	"net/netip"
	"time"
)

// Interface is the network attachment a probe is sent from.
type Interface struct {
	Name         string
	Index        int
	HardwareAddr net.HardwareAddr
	Flags        uint32 // kernel IFF_* bits
}

// netInterface converts to the form mdlayher/packet and net expect.
func (i *Interface) netInterface() *net.Interface {
	return &net.Interface{
		Index:        i.Index,
		Name:         i.Name,
		HardwareAddr: i.HardwareAddr,
	}
}

type Options struct {
	IfaceName   string
	Target      netip.Addr
	Destination net.HardwareAddr // broadcast unless -m was given
	Timeout     time.Duration
	ResolveName bool
	Verbose     bool
	Silent      bool
	NoColor     bool
}

type Status int

const (
	StatusNotFound Status = iota
	StatusFound
)

func (s Status) String() string {
	if s == StatusFound {
		return "found"
	}
	return "not found"
}

// Result is the terminal outcome of a probe that did not fail.
type Result struct {
	Status       Status
	HardwareAddr net.HardwareAddr
}
