package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"portsweep/port"
)

// PrintResults writes a table of open ports for the scanned target.
// Results are printed in the order given; callers wanting sorted
// output sort before calling.
func PrintResults(target, ip string, results []port.Result, w io.Writer) {
	label := target
	if ip != "" && ip != target {
		label = fmt.Sprintf("%s (%s)", target, ip)
	}
	fmt.Fprintf(w, "%d open ports on %s\n", len(results), label)
	if len(results) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "PORT\tSTATE\tRTT")
	for _, r := range results {
		fmt.Fprintf(tw, "%d/tcp\t%s\t%dms\n", r.Port, r.State, r.RTTMillis)
	}
	_ = tw.Flush()
}
