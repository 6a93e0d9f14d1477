package main

import (
	"bytes"
	"net"
	"net/netip"

	"github.com/mdlayher/arp"
	"github.com/mdlayher/ethernet"
)

const (
	// hardwareTypeEthernet is ARPHRD_ETHER.
	hardwareTypeEthernet = 1

	hardwareAddrLen = 6
	protocolAddrLen = 4
)

// newRequest builds a probe for target. The sender IP is left unspecified so
// the request never updates neighbour caches with our address.
func newRequest(self net.HardwareAddr, target netip.Addr, dst net.HardwareAddr) (*arp.Packet, error) {
	return arp.NewPacket(arp.OperationRequest, self, netip.IPv4Unspecified(), dst, target)
}

// accepts reports whether reply answers req. Only Ethernet/IPv4 replies
// count, and a directed request (non-broadcast target hardware address)
// only trusts a reply sent from that exact address.
func accepts(req, reply *arp.Packet) bool {
	if reply.HardwareType != hardwareTypeEthernet ||
		reply.ProtocolType != uint16(ethernet.EtherTypeIPv4) ||
		reply.HardwareAddrLength != hardwareAddrLen ||
		reply.IPLength != protocolAddrLen ||
		reply.Operation != arp.OperationReply {
		return false
	}

	if reply.SenderIP != req.TargetIP {
		return false
	}

	return isBroadcast(req.TargetHardwareAddr) ||
		bytes.Equal(reply.SenderHardwareAddr, req.TargetHardwareAddr)
}

func isBroadcast(mac net.HardwareAddr) bool {
	return bytes.Equal(mac, ethernet.Broadcast)
}
