package main

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"
	"time"

	"github.com/mdlayher/arp"
	"github.com/mdlayher/ethernet"
	"github.com/mdlayher/packet"
	"github.com/projectdiscovery/gologger"
	"golang.org/x/sys/unix"
)

// linkConn is the subset of *packet.Conn used by a probe.
type linkConn interface {
	ReadFrom(b []byte) (int, net.Addr, error)
	WriteTo(b []byte, addr net.Addr) (int, error)
	SetReadDeadline(t time.Time) error
	LocalAddr() net.Addr
	Close() error
}

// Prober sends one ARP request and waits for the matching reply.
type Prober struct {
	listen func(ifi *net.Interface) (linkConn, error)
}

func NewProber() *Prober {
	return &Prober{listen: listenARP}
}

// listenARP opens an AF_PACKET datagram socket bound to ifi for ARP; the
// kernel supplies the Ethernet header.
func listenARP(ifi *net.Interface) (linkConn, error) {
	c, err := packet.Listen(ifi, packet.Datagram, int(ethernet.EtherTypeARP), nil)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Probe asks who has target, sending to dst. A zero timeout waits forever.
// Frames that do not answer the request are discarded until the deadline.
func (p *Prober) Probe(ifi *Interface, target netip.Addr, dst net.HardwareAddr, timeout time.Duration) (Result, error) {
	c, err := p.listen(ifi.netInterface())
	if err != nil {
		return Result{}, sysError("socket", err)
	}
	defer c.Close()

	if timeout > 0 {
		if err := c.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return Result{}, sysError("setsockopt", err)
		}
	}

	self := localHardwareAddr(c)
	if len(self) == 0 {
		return Result{}, sysError("getsockname", fmt.Errorf("interface %s has no ll address", ifi.Name))
	}

	req, err := newRequest(self, target, dst)
	if err != nil {
		return Result{}, sysError("build request", err)
	}
	b, err := req.MarshalBinary()
	if err != nil {
		return Result{}, sysError("build request", err)
	}

	gologger.Verbose().Msgf("who-has %s tell %s via %s (dst %s)", target, self, ifi.Name, dst)
	if _, err := c.WriteTo(b, &packet.Addr{HardwareAddr: dst}); err != nil {
		return Result{}, sysError("sendto", err)
	}

	buf := make([]byte, 1500)
	for {
		n, _, err := c.ReadFrom(buf)
		if err != nil {
			if isTimeout(err) {
				return Result{Status: StatusNotFound}, nil
			}
			return Result{}, sysError("recvfrom", err)
		}

		var reply arp.Packet
		if err := reply.UnmarshalBinary(buf[:n]); err != nil {
			gologger.Debug().Msgf("discarding %d byte frame: %v", n, err)
			continue
		}
		if !accepts(req, &reply) {
			gologger.Debug().Msgf("discarding op %d from %s (%s)", reply.Operation, reply.SenderIP, reply.SenderHardwareAddr)
			continue
		}

		return Result{Status: StatusFound, HardwareAddr: reply.SenderHardwareAddr}, nil
	}
}

func localHardwareAddr(c linkConn) net.HardwareAddr {
	if addr, ok := c.LocalAddr().(*packet.Addr); ok && addr != nil {
		return addr.HardwareAddr
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, unix.EAGAIN) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
