package scanner

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"portsweep/port"
)

// DefaultTimeout bounds a single probe when Config.Timeout is unset.
const DefaultTimeout = time.Second

// Config contains runtime configuration for the Engine. The zero value
// scans the full 0-65535 range with a one second per-probe timeout and
// one concurrent probe per port.
type Config struct {
	// Ports to probe. Empty means the full range; duplicate entries
	// are probed once.
	Ports []uint16
	// Timeout bounds each individual connect attempt.
	Timeout time.Duration
	// Concurrency caps the number of in-flight probes. Zero or
	// negative means no cap beyond one goroutine per port.
	Concurrency int64
}

func (c Config) withDefaults() Config {
	if len(c.Ports) == 0 {
		c.Ports = port.FullRange()
	} else {
		c.Ports = dedupe(c.Ports)
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Concurrency <= 0 {
		c.Concurrency = int64(len(c.Ports))
	}
	return c
}

func dedupe(ports []uint16) []uint16 {
	seen := make(map[uint16]struct{}, len(ports))
	out := make([]uint16, 0, len(ports))
	for _, p := range ports {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Engine probes the configured set of TCP ports on a target address
// and reports which ones accept a connection.
type Engine struct {
	cfg Config
	log logrus.FieldLogger
}

// New creates an Engine with the provided config, applying defaults
// for unset fields.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults(), log: logrus.StandardLogger()}
}

// WithLogger replaces the engine's logger and returns the engine.
func (e *Engine) WithLogger(log logrus.FieldLogger) *Engine {
	e.log = log
	return e
}

// Run fans out one probe goroutine per configured port, gated by a
// weighted semaphore, and returns a channel carrying one Result per
// probed port. The channel is closed only after every probe has
// resolved. Cancelling ctx stops dispatch; ports never dispatched
// produce no result.
func (e *Engine) Run(ctx context.Context, address string) <-chan port.Result {
	results := make(chan port.Result, len(e.cfg.Ports))
	sem := semaphore.NewWeighted(e.cfg.Concurrency)

	go func() {
		var wg sync.WaitGroup
		for _, p := range e.cfg.Ports {
			if ctx.Err() != nil {
				break
			}
			if err := sem.Acquire(ctx, 1); err != nil {
				break
			}
			wg.Add(1)
			go func(p uint16) {
				defer wg.Done()
				defer sem.Release(1)
				res := probe(ctx, address, p, e.cfg.Timeout)
				e.log.WithFields(logrus.Fields{
					"port":   res.Port,
					"state":  res.State,
					"rtt_ms": res.RTTMillis,
				}).Debug("probe finished")
				results <- res
			}(p)
		}
		wg.Wait()
		close(results)
	}()

	return results
}

// Scan probes every configured port on address and returns the open
// ports sorted ascending. It blocks until all probes have resolved.
// There is no error return: an unresolvable or unreachable address
// yields an empty list, exactly like a host with no open ports.
func (e *Engine) Scan(ctx context.Context, address string) []uint16 {
	start := time.Now()
	open := make([]uint16, 0)
	for res := range e.Run(ctx, address) {
		if res.Open() {
			open = append(open, res.Port)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i] < open[j] })
	e.log.WithFields(logrus.Fields{
		"address": address,
		"probed":  len(e.cfg.Ports),
		"open":    len(open),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("scan complete")
	return open
}

// Scan probes all 65536 TCP ports on address with the default config
// and returns the open ports sorted ascending.
func Scan(ctx context.Context, address string) []uint16 {
	return New(Config{}).Scan(ctx, address)
}
