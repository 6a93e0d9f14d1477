package main

import (
	"github.com/jsimonetti/rtnetlink"
)

// netlinkStrategy enumerates links over rtnetlink, the same source
// getifaddrs(3) uses for AF_PACKET entries.
type netlinkStrategy struct {
	listLinks func() ([]rtnetlink.LinkMessage, error)
}

func newNetlinkStrategy() *netlinkStrategy {
	return &netlinkStrategy{listLinks: listNetlinkLinks}
}

func listNetlinkLinks() ([]rtnetlink.LinkMessage, error) {
	c, err := rtnetlink.Dial(nil)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return c.Link.List()
}

func (s *netlinkStrategy) Name() string { return "netlink" }

func (s *netlinkStrategy) Resolve(name string) (*Interface, outcome, error) {
	links, err := s.listLinks()
	if err != nil {
		return nil, outcomeUnsupported, err
	}

	var found *Interface
	count := 0
	for _, link := range links {
		attrs := link.Attributes
		if attrs == nil {
			continue
		}
		if name != "" && attrs.Name != name {
			continue
		}

		ok, err := checkIfFlags(link.Flags, name != "", name)
		if err != nil {
			return nil, outcomeNotFound, err
		}
		if !ok {
			continue
		}
		if len(attrs.Address) == 0 || len(attrs.Broadcast) == 0 {
			continue
		}

		found = &Interface{
			Name:         attrs.Name,
			Index:        int(link.Index),
			HardwareAddr: attrs.Address,
			Flags:        link.Flags,
		}
		if count++; count > 1 {
			break
		}
	}

	if count != 1 {
		return nil, outcomeNotFound, nil
	}
	return found, outcomeFound, nil
}
