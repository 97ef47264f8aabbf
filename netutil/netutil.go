// netutil/netutil.go
package netutil

import (
	"net"
)

// NetworkIP returns the machine's outward-facing IPv4 address, so the
// admin page can hand out URLs and QR codes that other devices on the
// venue network can reach. Falls back to localhost when no interface
// qualifies.
func NetworkIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "localhost"
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipNet.IP.To4()
			if ip == nil || ip.IsLoopback() {
				continue
			}
			return ip.String()
		}
	}
	return "localhost"
}
