package main

import (
	"net"
	"strings"
)

// ouiDB maps well-known OUI prefixes to vendors. Not exhaustive.
var ouiDB = map[string]string{
	"000C29": "VMware",
	"005056": "VMware",
	"080027": "VirtualBox",
	"525400": "QEMU/KVM",
	"001C42": "Parallels",
	"00155D": "Microsoft Hyper-V",
	"B827EB": "Raspberry Pi",
	"DCA632": "Raspberry Pi",
	"3C22FB": "Apple",
	"843A4B": "Apple",
}

func vendorOf(mac net.HardwareAddr) string {
	if len(mac) < 3 {
		return ""
	}
	prefix := strings.ToUpper(strings.ReplaceAll(mac[:3].String(), ":", ""))
	return ouiDB[prefix]
}
