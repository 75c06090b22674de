package util

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrCommandTimeout is returned when an external command did not finish within its timeout
var ErrCommandTimeout = errors.New("command timed out")

// SafeCmdExecution runs a root-owned executable and returns its trimmed stdout.
// The command is killed when ctx is done or the timeout elapsed.
func SafeCmdExecution(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error) {
	if _, err := CheckFilePermissionsForExecution(executable); err != nil {
		return "", fmt.Errorf("cannot execute %s: %w", executable, err)
	}

	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(cmdCtx, executable, args...).Output()
	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w: %s after %s", ErrCommandTimeout, executable, timeout)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", executable, err)
	}

	return strings.Trim(string(out), "\n"), nil
}
