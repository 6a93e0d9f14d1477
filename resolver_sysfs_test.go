package main

import (
	"fmt"
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type sysfsDev struct {
	name      string
	ifindex   string
	flags     string
	addrLen   string
	broadcast string
	address   string
}

func newSysfs(t *testing.T, devs ...sysfsDev) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(sysClassNet, 0o755))

	for _, d := range devs {
		require.NoError(t, fs.MkdirAll(path.Join(sysClassNet, d.name), 0o755))
		attrs := map[string]string{
			"ifindex":   d.ifindex,
			"flags":     d.flags,
			"addr_len":  d.addrLen,
			"broadcast": d.broadcast,
			"address":   d.address,
		}
		for attr, v := range attrs {
			if v == "" {
				continue
			}
			p := path.Join(sysClassNet, d.name, attr)
			require.NoError(t, afero.WriteFile(fs, p, []byte(v+"\n"), 0o444))
		}
	}
	return fs
}

func ethDev(name string, index int, flags uint32) sysfsDev {
	return sysfsDev{
		name:      name,
		ifindex:   fmt.Sprint(index),
		flags:     fmt.Sprintf("0x%x", flags),
		addrLen:   "6",
		broadcast: "ff:ff:ff:ff:ff:ff",
		address:   fmt.Sprintf("02:00:00:00:00:%02x", index),
	}
}

func TestSysfsStrategy(t *testing.T) {
	const upNotRunning = unix.IFF_UP | unix.IFF_BROADCAST

	lo := sysfsDev{name: "lo", ifindex: "1", flags: "0x9", addrLen: "6", broadcast: "00:00:00:00:00:00"}
	tun := sysfsDev{name: "tun0", ifindex: "7", flags: "0x1091", addrLen: "0", broadcast: "0"}
	broken := sysfsDev{name: "eth9", ifindex: "9", flags: "garbage", addrLen: "6", broadcast: "ff:ff:ff:ff:ff:ff"}
	noLen := sysfsDev{name: "gre0", ifindex: "8", flags: "0x1", addrLen: "0", broadcast: ""}

	tests := []struct {
		name     string
		devs     []sysfsDev
		iface    string
		wantRes  outcome
		wantName string
		wantElig string
	}{
		{
			name:     "single eligible",
			devs:     []sysfsDev{lo, ethDev("eth0", 2, ethFlags), tun},
			wantRes:  outcomeFound,
			wantName: "eth0",
		},
		{
			name:    "no eligible",
			devs:    []sysfsDev{lo, tun, ethDev("eth0", 2, unix.IFF_BROADCAST)},
			wantRes: outcomeNotFound,
		},
		{
			name:    "two eligible, neither running",
			devs:    []sysfsDev{ethDev("eth0", 2, upNotRunning), ethDev("eth1", 3, upNotRunning)},
			wantRes: outcomeNotFound,
		},
		{
			name:     "running device already selected wins",
			devs:     []sysfsDev{ethDev("eth0", 2, ethFlags), ethDev("eth1", 3, ethFlags)},
			wantRes:  outcomeFound,
			wantName: "eth0",
		},
		{
			name:    "selected device not running does not win",
			devs:    []sysfsDev{ethDev("eth0", 2, upNotRunning), ethDev("eth1", 3, ethFlags)},
			wantRes: outcomeNotFound,
		},
		{
			name:     "unreadable device skipped",
			devs:     []sysfsDev{broken, ethDev("eth0", 2, ethFlags)},
			wantRes:  outcomeFound,
			wantName: "eth0",
		},
		{
			name:     "named",
			devs:     []sysfsDev{ethDev("eth0", 2, upNotRunning), ethDev("eth1", 3, upNotRunning)},
			iface:    "eth1",
			wantRes:  outcomeFound,
			wantName: "eth1",
		},
		{
			name:     "named down",
			devs:     []sysfsDev{ethDev("eth0", 2, unix.IFF_BROADCAST)},
			iface:    "eth0",
			wantRes:  outcomeNotFound,
			wantElig: "down",
		},
		{
			name:     "named noarp",
			devs:     []sysfsDev{tun},
			iface:    "tun0",
			wantRes:  outcomeNotFound,
			wantElig: "not ARPable",
		},
		{
			name:    "named without link address",
			devs:    []sysfsDev{noLen},
			iface:   "gre0",
			wantRes: outcomeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &sysfsStrategy{fs: newSysfs(t, tt.devs...), supported: func() bool { return true }}

			ifi, res, err := s.Resolve(tt.iface)
			assert.Equal(t, tt.wantRes, res)

			if tt.wantElig != "" {
				var eligErr *EligibilityError
				require.ErrorAs(t, err, &eligErr)
				assert.Equal(t, tt.wantElig, eligErr.Reason)
			} else {
				assert.NoError(t, err)
			}

			if tt.wantName == "" {
				assert.Nil(t, ifi)
				return
			}
			require.NotNil(t, ifi)
			assert.Equal(t, tt.wantName, ifi.Name)
			assert.NotZero(t, ifi.Index)
			assert.Len(t, ifi.HardwareAddr, 6)
		})
	}
}

func TestSysfsStrategyUnsupported(t *testing.T) {
	t.Run("missing sysfs", func(t *testing.T) {
		s := &sysfsStrategy{fs: afero.NewMemMapFs(), supported: func() bool { return true }}
		_, res, err := s.Resolve("")
		assert.Equal(t, outcomeUnsupported, res)
		assert.Error(t, err)
	})

	t.Run("not linux", func(t *testing.T) {
		s := &sysfsStrategy{fs: newSysfs(t, ethDev("eth0", 2, ethFlags)), supported: func() bool { return false }}
		_, res, _ := s.Resolve("")
		assert.Equal(t, outcomeUnsupported, res)
	})
}
