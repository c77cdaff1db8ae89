package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Arguments holds the resolved options for one merge invocation.
type Arguments struct {
	Tool   string   // Merge tool binary; DefaultTool when empty
	Inputs []string // Input tile paths, in order
	Output string   // Destination path for the consolidated file

	// Stdout and Stderr receive the subprocess's output streams.
	// They default to os.Stdout and os.Stderr when nil.
	Stdout io.Writer
	Stderr io.Writer

	// Runner executes the tool. Defaults to a real ExecRunner when nil.
	Runner CommandRunner
}

// Result describes a completed merge invocation.
type Result struct {
	ExitCode int    // Exit status of the tool (0 on success)
	Stderr   string // Captured standard-error text
}

// Execute runs a merge job end to end: it validates the job, ensures the
// output directory exists, and invokes the external tool with every input
// path in order followed by the output path.
//
// On a non-zero tool exit the returned error is an *ExternalToolError
// carrying the exit code and the captured stderr; if the output directory
// cannot be prepared the error is a *FilesystemError and the tool is never
// invoked.
func Execute(ctx context.Context, args Arguments, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	job, err := NewJob(args.Tool, args.Inputs, args.Output)
	if err != nil {
		return nil, fmt.Errorf("invalid merge job: %w", err)
	}

	logger.Info("Starting merge",
		zap.String("tool", job.Tool),
		zap.Int("inputCount", len(job.Inputs)),
		zap.String("output", job.Output),
	)

	if err := EnsureOutputDirectory(filepath.Dir(job.Output), logger); err != nil {
		return nil, err
	}

	stdout := args.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := args.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	runner := args.Runner
	if runner == nil {
		runner = NewExecRunner()
	}

	// Stderr stays visible on the configured stream and is captured for the
	// error value on failure.
	var captured bytes.Buffer
	argv := job.Args()
	logger.Debug("Invoking merge tool", zap.String("tool", job.Tool), zap.Strings("args", argv))

	exitCode, runErr := runner.Run(ctx, job.Tool, argv, stdout, io.MultiWriter(stderr, &captured))
	if runErr != nil {
		toolErr := &ExternalToolError{
			Tool:     job.Tool,
			ExitCode: exitCode,
			Stderr:   captured.String(),
			Err:      runErr,
		}
		logger.Error("Merge tool failed",
			zap.String("tool", job.Tool),
			zap.Int("exitCode", exitCode),
			zap.Error(runErr),
		)
		return nil, toolErr
	}

	logger.Info("Merge completed", zap.String("output", job.Output))
	return &Result{ExitCode: exitCode, Stderr: captured.String()}, nil
}

// EnsureOutputDirectory creates path and any missing parents. It is a no-op
// when the directory already exists and fails with a *FilesystemError when
// the path exists as a non-directory entry or creation is denied.
func EnsureOutputDirectory(path string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" || path == "." {
		return nil
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		logger.Error("Output directory path exists as a file", zap.String("path", path))
		return &FilesystemError{Path: path, Err: errors.New("path exists and is not a directory")}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		logger.Error("Failed to create output directory", zap.String("path", path), zap.Error(err))
		return &FilesystemError{Path: path, Err: err}
	}
	logger.Debug("Ensured output directory exists", zap.String("path", path))
	return nil
}
