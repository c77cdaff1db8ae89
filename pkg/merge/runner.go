package merge

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"syscall"
	"time"
)

// termGracePeriod is how long a cancelled subprocess gets to exit after
// SIGTERM before it is killed.
const termGracePeriod = 10 * time.Second

// CommandRunner runs the external merge tool. It exists so the invocation
// path can be exercised in tests without a real point-cloud utility.
type CommandRunner interface {
	// Run executes name with args, streaming the subprocess's stdout and
	// stderr to the given writers, and blocks until it exits. The returned
	// exit code is -1 when the process could not be started.
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) (exitCode int, err error)
}

// ExecRunner is the real CommandRunner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner creates a CommandRunner that spawns real subprocesses.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

var _ CommandRunner = (*ExecRunner)(nil)

// Run executes the command synchronously. Context cancellation forwards
// SIGTERM to the subprocess; if it has not exited after the grace period it
// is killed. No timeout is imposed by the runner itself.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = termGracePeriod

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), err
	}
	return -1, err
}
