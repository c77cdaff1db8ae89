package merge

import "fmt"

// FilesystemError reports a failure to prepare the output location.
// When it occurs the external tool is never invoked.
type FilesystemError struct {
	Path string // The directory path that could not be prepared
	Err  error  // The underlying filesystem error, if any
}

func (e *FilesystemError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("filesystem error: %s", e.Path)
	}
	return fmt.Sprintf("filesystem error: %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// ExternalToolError reports a merge tool invocation that did not succeed.
// ExitCode is the subprocess exit status, or -1 when the tool could not be
// started at all. Stderr holds the captured standard-error text verbatim;
// the wrapper does not interpret the tool's own error codes.
type ExternalToolError struct {
	Tool     string // The tool binary that was invoked
	ExitCode int    // Subprocess exit status (-1 if it never started)
	Stderr   string // Captured standard-error output
	Err      error  // The underlying exec error
}

func (e *ExternalToolError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("external tool %q failed to start: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("external tool %q exited with code %d", e.Tool, e.ExitCode)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
