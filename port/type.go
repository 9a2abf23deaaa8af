package port

// MaxPort is the highest valid TCP port number.
const MaxPort = 65535

// State classifies the outcome of a single TCP probe.
type State string

const (
	StateOpen     State = "open"
	StateClosed   State = "closed"
	StateFiltered State = "filtered"
)

// Result represents the outcome of probing a single TCP port.
// Anything beyond open/not-open is diagnostic only: the scanner's
// open-port contract collapses every failure into "not open".
type Result struct {
	Port      uint16
	State     State
	Error     string
	RTTMillis int64
}

// Open reports whether the probe established a connection before its
// timeout elapsed.
func (r Result) Open() bool {
	return r.State == StateOpen
}

// FullRange returns every port in [0, MaxPort] in ascending order.
func FullRange() []uint16 {
	ports := make([]uint16, 0, MaxPort+1)
	for p := 0; p <= MaxPort; p++ {
		ports = append(ports, uint16(p))
	}
	return ports
}
