package identify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/m-manu/digipres-columns/entity"
)

const (
	// DefaultBinary is looked up on PATH when no binary is configured
	DefaultBinary = "sf"

	// DefaultTimeout bounds a single invocation of the tool
	DefaultTimeout = 60 * time.Second

	jsonFlag = "-json"

	// grace period for the tool's output pipes to close once it has been killed
	waitDelay = 2 * time.Second
)

// Identifier invokes the identification tool, one file per call.
// It holds no mutable state and is safe for concurrent use.
type Identifier struct {
	binary    string
	extraArgs []string
	timeout   time.Duration
	reporter  Reporter
}

// Option configures an Identifier
type Option func(*Identifier)

// WithTimeout sets the per-file deadline; 0 waits for the tool indefinitely
func WithTimeout(timeout time.Duration) Option {
	return func(i *Identifier) {
		i.timeout = timeout
	}
}

// WithReporter sets where failures are reported by Identify
func WithReporter(reporter Reporter) Option {
	return func(i *Identifier) {
		if reporter != nil {
			i.reporter = reporter
		}
	}
}

// WithArgs passes extra arguments to the tool ahead of the JSON flag (e.g. "-sig", "deluxe.sig")
func WithArgs(args ...string) Option {
	return func(i *Identifier) {
		i.extraArgs = append(i.extraArgs, args...)
	}
}

// New creates an Identifier running binary. An empty binary means DefaultBinary.
func New(binary string, opts ...Option) *Identifier {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	i := &Identifier{
		binary:   binary,
		timeout:  DefaultTimeout,
		reporter: NewConsoleReporter(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Binary is the executable this Identifier runs
func (i *Identifier) Binary() string {
	return i.binary
}

// Available checks whether the binary can be found
func (i *Identifier) Available() error {
	if _, err := exec.LookPath(i.binary); err != nil {
		return &Failure{Kind: ToolNotFound, Err: fmt.Errorf("binary %q not found: %w", i.binary, err)}
	}
	return nil
}

// Identify returns the format of the file at path. On failure, the failure is sent to the
// reporter and an empty result is returned.
func (i *Identifier) Identify(ctx context.Context, path string) entity.IdentificationResult {
	result, err := i.Inspect(ctx, path)
	if err != nil {
		var failure *Failure
		if !errors.As(err, &failure) {
			failure = &Failure{Kind: ToolExecutionError, Path: path, Err: err}
		}
		i.reporter.Report(failure)
		return entity.IdentificationResult{}
	}
	return result
}

// Inspect is Identify without reporting: failures come back as a *Failure
func (i *Identifier) Inspect(ctx context.Context, path string) (entity.IdentificationResult, error) {
	stdout, failure := i.run(ctx, path)
	if failure != nil {
		return entity.IdentificationResult{}, failure
	}
	out, parseErr := ParseOutput(stdout)
	if parseErr != nil {
		return entity.IdentificationResult{}, &Failure{Kind: MalformedOutput, Path: path, Err: parseErr}
	}
	match, matchErr := out.FirstMatch()
	if matchErr != nil {
		return entity.IdentificationResult{}, &Failure{Kind: NoMatchData, Path: path, Err: matchErr}
	}
	return match.Result(), nil
}

func (i *Identifier) run(ctx context.Context, path string) ([]byte, *Failure) {
	runCtx := ctx
	if i.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}
	args := make([]string, 0, len(i.extraArgs)+2)
	args = append(args, i.extraArgs...)
	args = append(args, jsonFlag, path)
	cmd := exec.CommandContext(runCtx, i.binary, args...)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		if ctx.Err() != nil {
			return nil, &Failure{Kind: ToolExecutionError, Path: path, Err: fmt.Errorf("sf start: %w", ctx.Err())}
		}
		return nil, &Failure{Kind: ToolNotFound, Path: path, Err: fmt.Errorf("sf start: %w", err)}
	}
	if err := cmd.Wait(); err != nil {
		// the caller's own cancellation or deadline isn't ours to call a timeout
		if ctx.Err() != nil {
			return nil, &Failure{Kind: ToolExecutionError, Path: path, Err: fmt.Errorf("sf run: %w", ctx.Err())}
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, &Failure{Kind: Timeout, Path: path, Err: fmt.Errorf("sf run: no result after %v", i.timeout)}
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, &Failure{Kind: ToolExecutionError, Path: path, Err: fmt.Errorf("sf run: %w: %s", err, detail)}
		}
		return nil, &Failure{Kind: ToolExecutionError, Path: path, Err: fmt.Errorf("sf run: %w", err)}
	}
	return stdout.Bytes(), nil
}
