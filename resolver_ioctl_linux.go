//go:build linux

package main

import (
	"golang.org/x/sys/unix"
)

// socketQuerier issues SIOCGIFFLAGS/SIOCGIFINDEX on a throwaway
// AF_INET datagram socket. Each call uses its own ifreq.
type socketQuerier struct {
	fd int
}

func openIfreqQuerier() (ifreqQuerier, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, sysError("socket", err)
	}
	return &socketQuerier{fd: fd}, nil
}

func (q *socketQuerier) Flags(name string) (uint32, error) {
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return 0, err
	}
	if err := unix.IoctlIfreq(q.fd, unix.SIOCGIFFLAGS, ifr); err != nil {
		return 0, sysError("ioctl(SIOCGIFFLAGS)", err)
	}
	return uint32(ifr.Uint16()), nil
}

func (q *socketQuerier) Index(name string) (int, error) {
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return 0, err
	}
	if err := unix.IoctlIfreq(q.fd, unix.SIOCGIFINDEX, ifr); err != nil {
		return 0, sysError("ioctl(SIOCGIFINDEX)", err)
	}
	return int(ifr.Uint32()), nil
}

func (q *socketQuerier) Close() error {
	return unix.Close(q.fd)
}
