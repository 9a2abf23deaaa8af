package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"portsweep/netutil"
	"portsweep/output"
	"portsweep/port"
	"portsweep/scanner"
)

var (
	errResolve = errors.New("failed to resolve target")
	errOutput  = errors.New("output failure")
)

type options struct {
	portsSpec   string
	timeout     time.Duration
	concurrency int64
	outFile     string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "portsweep <target>",
		Short: "Concurrent TCP connect scanner",
		Long: `portsweep probes TCP ports on a single target host concurrently and
reports the ones that accept a connection. With no port spec it scans
the full 0-65535 range.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.portsSpec, "ports", "p", "", "ports to scan (e.g. 22,80,8000-8100; default full range)")
	cmd.Flags().DurationVarP(&opts.timeout, "timeout", "t", time.Second, "per-probe timeout")
	cmd.Flags().Int64VarP(&opts.concurrency, "concurrency", "c", 0, "max concurrent probes (0 = one per port)")
	cmd.Flags().StringVarP(&opts.outFile, "file", "f", "", "write results to file (atomic overwrite)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	return cmd
}

func run(ctx context.Context, target string, opts *options) error {
	if opts.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ports := port.FullRange()
	if opts.portsSpec != "" {
		var err error
		ports, err = port.ParseSpec(opts.portsSpec)
		if err != nil {
			return fmt.Errorf("invalid ports spec: %w", err)
		}
	}

	// resolve up front so a bad hostname is reported as a distinct
	// diagnostic instead of 65536 silent probe failures
	ip, err := netutil.ResolveTarget(target)
	if err != nil {
		return fmt.Errorf("%w %q: %v", errResolve, target, err)
	}

	logrus.WithFields(logrus.Fields{
		"target": target,
		"ip":     ip.String(),
		"ports":  len(ports),
	}).Info("starting scan")

	eng := scanner.New(scanner.Config{
		Ports:       ports,
		Timeout:     opts.timeout,
		Concurrency: opts.concurrency,
	})

	var open []port.Result
	for res := range eng.Run(ctx, ip.String()) {
		if res.Open() {
			open = append(open, res)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].Port < open[j].Port })

	var buf bytes.Buffer
	output.PrintResults(target, ip.String(), open, &buf)
	if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: write stdout: %v", errOutput, err)
	}

	if opts.outFile != "" {
		if err := output.WriteAtomic(opts.outFile, buf.Bytes()); err != nil {
			return fmt.Errorf("%w: write output file: %v", errOutput, err)
		}
	}
	return nil
}

// exitCode maps a command error to the process exit code: 4 for
// resolution and output IO failures, 2 for usage and everything else.
func exitCode(err error) int {
	if errors.Is(err, errResolve) || errors.Is(err, errOutput) {
		return 4
	}
	return 2
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(exitCode(err))
	}
}
