package scanner

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	"portsweep/port"
)

// probe performs a single TCP connect attempt to (host, portNum),
// bounded by timeout. A successful handshake yields StateOpen and the
// connection is closed immediately. Refused connections map to
// StateClosed, timeouts and everything else to StateFiltered. The
// caller treats anything that is not StateOpen as "not open"; the
// distinction is kept on the result for diagnostics only.
func probe(ctx context.Context, host string, portNum uint16, timeout time.Duration) port.Result {
	addr := net.JoinHostPort(host, strconv.Itoa(int(portNum)))
	d := net.Dialer{Timeout: timeout}

	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", addr)
	rtt := time.Since(start)

	res := port.Result{
		Port:      portNum,
		State:     port.StateFiltered,
		RTTMillis: rtt.Milliseconds(),
	}

	if err == nil {
		res.State = port.StateOpen
		// close immediately; nothing is read or written on the socket
		_ = conn.Close()
		return res
	}

	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		res.Error = "timeout"
		return res
	}

	if refused(err) {
		res.State = port.StateClosed
		res.Error = "connection refused"
		return res
	}

	res.Error = err.Error()
	return res
}

func refused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	// some platforms surface refusal without a wrapped errno
	return strings.Contains(err.Error(), "connection refused")
}
