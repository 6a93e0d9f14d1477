package main

import (
	"math"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/projectdiscovery/gologger"
)

func checkPrivileges() {
	// AF_PACKET sockets need CAP_NET_RAW; the probe fails later without it
	if os.Geteuid() != 0 {
		gologger.Warning().Msg("not running as root, opening the packet socket may fail")
	}
}

// parseTimeout parses a non-negative number of seconds. Fractions are kept
// to microsecond precision and truncated below that.
func parseTimeout(s string) (time.Duration, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) || v > math.MaxInt64/float64(time.Second) {
		return 0, argErrorf("invalid timeout '%s'", s)
	}

	sec, frac := math.Modf(v)
	return time.Duration(sec)*time.Second + time.Duration(frac*1e6)*time.Microsecond, nil
}

// parseMAC accepts six colon-separated groups of one or two hex digits,
// the format ether_aton(3) reads.
func parseMAC(s string) (net.HardwareAddr, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return nil, argErrorf("invalid MAC address '%s'", s)
	}

	mac := make(net.HardwareAddr, 6)
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 {
			return nil, argErrorf("invalid MAC address '%s'", s)
		}
		b, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return nil, argErrorf("invalid MAC address '%s'", s)
		}
		mac[i] = byte(b)
	}
	return mac, nil
}

// formatMAC renders mac as upper-case colon-separated hex.
func formatMAC(mac net.HardwareAddr) string {
	return strings.ToUpper(mac.String())
}
