package main

import (
	"fmt"
	"net"
	"path"
	"strconv"
	"strings"

	osutils "github.com/projectdiscovery/utils/os"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

const sysClassNet = "/sys/class/net"

// sysfsStrategy reads per-device attribute files under /sys/class/net.
type sysfsStrategy struct {
	fs        afero.Fs
	supported func() bool
}

func newSysfsStrategy() *sysfsStrategy {
	return &sysfsStrategy{
		fs:        afero.NewReadOnlyFs(afero.NewOsFs()),
		supported: osutils.IsLinux,
	}
}

func (s *sysfsStrategy) Name() string { return "sysfs" }

// sysfsDevice holds the attributes read for one device.
type sysfsDevice struct {
	name      string
	ifindex   int
	flags     uint32
	addrLen   int
	broadcast net.HardwareAddr
	address   net.HardwareAddr
}

func (s *sysfsStrategy) Resolve(name string) (*Interface, outcome, error) {
	if !s.supported() {
		return nil, outcomeUnsupported, fmt.Errorf("%s not available on this platform", sysClassNet)
	}

	entries, err := afero.ReadDir(s.fs, sysClassNet)
	if err != nil {
		return nil, outcomeUnsupported, err
	}

	var selected *sysfsDevice
	count := 0
	for _, entry := range entries {
		if name != "" && entry.Name() != name {
			continue
		}

		dev, err := s.readDevice(entry.Name())
		if err != nil {
			continue
		}

		ok, err := checkIfFlags(dev.flags, name != "", name)
		if err != nil {
			return nil, outcomeNotFound, err
		}
		if !ok || dev.addrLen == 0 {
			continue
		}

		// A running device already picked wins over later candidates.
		if selected != nil && selected.ifindex != 0 && selected.flags&unix.IFF_RUNNING != 0 {
			continue
		}

		selected = dev
		if count++; count > 1 {
			break
		}
	}

	if count != 1 || selected.ifindex == 0 {
		return nil, outcomeNotFound, nil
	}
	return &Interface{
		Name:         selected.name,
		Index:        selected.ifindex,
		HardwareAddr: selected.address,
		Flags:        selected.flags,
	}, outcomeFound, nil
}

func (s *sysfsStrategy) readDevice(name string) (*sysfsDevice, error) {
	dev := &sysfsDevice{name: name}

	ifindex, err := s.readUint(name, "ifindex", 10)
	if err != nil {
		return nil, err
	}
	dev.ifindex = int(ifindex)

	flags, err := s.readUint(name, "flags", 16)
	if err != nil {
		return nil, err
	}
	dev.flags = uint32(flags)

	addrLen, err := s.readUint(name, "addr_len", 10)
	if err != nil {
		return nil, err
	}
	dev.addrLen = int(addrLen)

	dev.broadcast, err = s.readHardwareAddr(name, "broadcast", dev.addrLen)
	if err != nil {
		return nil, err
	}

	// address is informational; the probe reads its own from the socket
	dev.address, _ = s.readHardwareAddr(name, "address", dev.addrLen)

	return dev, nil
}

func (s *sysfsStrategy) readAttr(dev, attr string) (string, error) {
	b, err := afero.ReadFile(s.fs, path.Join(sysClassNet, dev, attr))
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}

func (s *sysfsStrategy) readUint(dev, attr string, base int) (uint64, error) {
	v, err := s.readAttr(dev, attr)
	if err != nil {
		return 0, err
	}
	if base == 16 {
		v = strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
	}
	n, err := strconv.ParseUint(v, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%s/%s: %w", dev, attr, err)
	}
	return n, nil
}

// readHardwareAddr parses addrLen colon-separated hex octets.
func (s *sysfsStrategy) readHardwareAddr(dev, attr string, addrLen int) (net.HardwareAddr, error) {
	v, err := s.readAttr(dev, attr)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(v, ":")
	if len(parts) < addrLen {
		return nil, fmt.Errorf("%s/%s: want %d octets, got %q", dev, attr, addrLen, v)
	}

	mac := make(net.HardwareAddr, addrLen)
	for i := 0; i < addrLen; i++ {
		octet, err := strconv.ParseUint(parts[i], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", dev, attr, err)
		}
		mac[i] = byte(octet)
	}
	return mac, nil
}
