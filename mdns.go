package main

import (
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/projectdiscovery/gologger"
)

const mdnsTimeout = 1500 * time.Millisecond

var mdnsGroup = &net.UDPAddr{IP: net.IPv4(224, 0, 0, 251), Port: 5353}

// mdnsNameOf asks the link for the PTR record of target and returns the
// first name answered, or "" if nobody answers within timeout.
func mdnsNameOf(ifi *Interface, target netip.Addr, timeout time.Duration) string {
	reverse, err := dns.ReverseAddr(target.String())
	if err != nil {
		return ""
	}

	iface, err := net.InterfaceByIndex(ifi.Index)
	if err != nil {
		gologger.Debug().Msgf("mdns: %v", err)
		return ""
	}

	conn, err := net.ListenMulticastUDP("udp4", iface, mdnsGroup)
	if err != nil {
		gologger.Debug().Msgf("mdns: %v", err)
		return ""
	}
	defer conn.Close()

	q := new(dns.Msg)
	q.SetQuestion(reverse, dns.TypePTR)
	q.RecursionDesired = false

	b, err := q.Pack()
	if err != nil {
		return ""
	}

	if _, err := conn.WriteToUDP(b, mdnsGroup); err != nil {
		gologger.Debug().Msgf("mdns: %v", err)
		return ""
	}

	deadline := time.Now().Add(timeout)
	buf := make([]byte, 65536)

	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(deadline)
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			continue
		}

		m := new(dns.Msg)
		if err := m.Unpack(buf[:n]); err != nil {
			continue
		}
		if name := ptrName(m, reverse); name != "" {
			return name
		}
	}

	return ""
}

// ptrName returns the PTR target for reverse found in m's answer or
// additional sections.
func ptrName(m *dns.Msg, reverse string) string {
	if !m.Response {
		return ""
	}
	for _, rr := range append(m.Answer, m.Extra...) {
		ptr, ok := rr.(*dns.PTR)
		if !ok || !strings.EqualFold(ptr.Hdr.Name, reverse) {
			continue
		}
		return strings.TrimSuffix(ptr.Ptr, ".")
	}
	return ""
}
