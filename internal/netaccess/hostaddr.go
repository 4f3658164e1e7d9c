package netaccess

import (
	"fmt"
	"net"
)

// LocalIPv4s returns the host's non-loopback IPv4 addresses.
func LocalIPv4s() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	var out []string
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
			if ip4 := ipNet.IP.To4(); ip4 != nil {
				out = append(out, ip4.String())
			}
		}
	}
	return out, nil
}

// ServiceURLs composes the informational URL for each service rule on the
// given host address.
func ServiceURLs(host string, rules []Rule) []string {
	urls := make([]string, 0, len(rules))
	for _, r := range rules {
		urls = append(urls, fmt.Sprintf("%s: http://%s:%d", r.Name, host, r.Port))
	}
	return urls
}
