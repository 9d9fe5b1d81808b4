package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// CommandFunc runs an external command and returns its standard output.
// Output is returned alongside an error when the command ran but exited non-zero.
type CommandFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// killGrace bounds how long we wait for output pipes after the process is killed
const killGrace = 500 * time.Millisecond

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = killGrace

	output, err := cmd.Output()
	if err == nil {
		return output, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return output, fmt.Errorf("%w: %s did not finish in time", ErrTimeout, name)
		}
		return output, fmt.Errorf("%s: %w", name, ctxErr)
	}

	if errors.Is(err, exec.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s not found in PATH", ErrToolUnavailable, name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return output, fmt.Errorf("%s exited with status %d", name, exitErr.ExitCode())
	}

	// permission denied, not executable, ...
	return nil, fmt.Errorf("%w: %s: %v", ErrToolUnavailable, name, err)
}
