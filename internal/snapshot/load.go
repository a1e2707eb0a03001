package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// LoadOpts configures Load.
type LoadOpts struct {
	// Timeout bounds exec:// sources. Zero means no limit.
	Timeout time.Duration
	// Stdin is read for the "-" source.
	Stdin io.Reader
	// Env is passed to exec:// commands as their whole environment.
	Env []string
}

// LoadResult holds the raw snapshot bytes and, for exec:// sources, what
// the command wrote to stderr.
type LoadResult struct {
	Data     []byte
	Stderr   string
	Duration time.Duration
}

// Load reads the snapshot from src. A non-zero exit of an exec:// command
// is an error, unlike a healthcheck, because its stdout is not a usable
// snapshot.
func Load(ctx context.Context, src *Source, opts LoadOpts) (*LoadResult, error) {
	start := time.Now()
	switch src.Scheme {
	case SchemeFile:
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot: %w", err)
		}
		return &LoadResult{Data: data, Duration: time.Since(start)}, nil
	case SchemeStdin:
		if opts.Stdin == nil {
			return nil, fmt.Errorf("reading snapshot: no stdin")
		}
		data, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot from stdin: %w", err)
		}
		return &LoadResult{Data: data, Duration: time.Since(start)}, nil
	case SchemeExec:
		return execSource(ctx, src.Path, opts)
	default:
		return nil, fmt.Errorf("unsupported snapshot scheme: %s", src.Scheme)
	}
}

func execSource(ctx context.Context, path string, opts LoadOpts) (*LoadResult, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path)
	cmd.WaitDelay = time.Second
	cmd.Env = opts.Env
	if cmd.Env == nil {
		cmd.Env = []string{}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &LoadResult{
		Data:     stdout.Bytes(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return result, fmt.Errorf("snapshot command timed out after %s", opts.Timeout)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return result, fmt.Errorf("snapshot command exited with code %d", exitErr.ExitCode())
		}
		return result, fmt.Errorf("executing snapshot command: %w", err)
	}

	return result, nil
}
