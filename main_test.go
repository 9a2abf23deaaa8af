package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w %q: no such host", errResolve, "host.invalid"), 4},
		{fmt.Errorf("%w: write output file: permission denied", errOutput), 4},
		{errors.New("invalid ports spec: bad token"), 2},
	}
	for _, c := range cases {
		if got := exitCode(c.err); got != c.want {
			t.Fatalf("exitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestRun_OutputFileFailure(t *testing.T) {
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(dir, 0o755)
	})

	opts := &options{
		portsSpec: "1",
		timeout:   200 * time.Millisecond,
		outFile:   filepath.Join(dir, "out.txt"),
	}
	err := run(context.Background(), "127.0.0.1", opts)
	if err == nil {
		t.Fatal("expected error writing into read-only dir")
	}
	if !errors.Is(err, errOutput) {
		t.Fatalf("error not tagged as output failure: %v", err)
	}
	if exitCode(err) != 4 {
		t.Fatalf("exitCode = %d, want 4", exitCode(err))
	}
}

func TestRun_ResolveFailure(t *testing.T) {
	opts := &options{portsSpec: "1", timeout: 200 * time.Millisecond}
	err := run(context.Background(), "host.invalid", opts)
	if err == nil {
		t.Fatal("expected resolution error")
	}
	if !errors.Is(err, errResolve) {
		t.Fatalf("error not tagged as resolve failure: %v", err)
	}
	if exitCode(err) != 4 {
		t.Fatalf("exitCode = %d, want 4", exitCode(err))
	}
}
