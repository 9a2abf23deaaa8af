package port

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ParseSpec parses a port specification string and returns a sorted,
// deduplicated slice of ports.
// Supported forms:
//   - single: "22"
//   - list: "22,80,443"
//   - range: "0-1024"
//   - mixed: "22,80,8000-8100"
func ParseSpec(spec string) ([]uint16, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.New("empty port spec")
	}
	seen := make(map[int]struct{})
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, errors.New("invalid empty token in port spec")
		}
		if strings.Contains(tok, "-") {
			bounds := strings.SplitN(tok, "-", 2)
			start, err := parsePort(bounds[0])
			if err != nil {
				return nil, err
			}
			end, err := parsePort(bounds[1])
			if err != nil {
				return nil, err
			}
			if start > end {
				return nil, errors.New("range start greater than end: " + tok)
			}
			for p := start; p <= end; p++ {
				seen[p] = struct{}{}
			}
		} else {
			p, err := parsePort(tok)
			if err != nil {
				return nil, err
			}
			seen[p] = struct{}{}
		}
	}
	ports := make([]int, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	out := make([]uint16, 0, len(ports))
	for _, p := range ports {
		out = append(out, uint16(p))
	}
	return out, nil
}

func parsePort(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if v < 0 || v > MaxPort {
		return 0, errors.New("port numbers must be in 0..65535")
	}
	return v, nil
}
