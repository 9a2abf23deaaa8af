package netutil

import (
	"errors"
	"net"
)

// ResolveTarget resolves the given target (hostname or IP literal) and
// returns one address to scan. IP literals are returned as-is; for
// hostnames the first IPv4 address wins, falling back to the first
// IPv6 address when the host has no A records.
func ResolveTarget(target string) (net.IP, error) {
	if ip := net.ParseIP(target); ip != nil {
		return ip, nil
	}

	ips, err := net.LookupIP(target)
	if err != nil {
		return nil, err
	}
	var firstV6 net.IP
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4, nil
		}
		if firstV6 == nil {
			firstV6 = ip
		}
	}
	if firstV6 != nil {
		return firstV6, nil
	}
	return nil, errors.New("no addresses found for host")
}
