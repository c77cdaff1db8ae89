package main

import (
	"errors"
	"log"
	"os"
	"strings"

	"lazmerge/cmd"
	"lazmerge/pkg/logging"
	"lazmerge/pkg/merge"
	"lazmerge/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	logger, err := logging.Setup(false, "lazmerge", version.Get().Version)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Execute the root command
	runErr := cmd.Execute(logger)
	if runErr != nil {
		logger.Error("lazmerge execution failed", zap.Error(runErr))
	}

	// Check if stderr is a terminal or a regular file before attempting to sync.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}

	if runErr != nil {
		os.Exit(exitCode(runErr))
	}
}

// exitCode maps a failure to the process exit status: the external tool's
// own exit code when the tool failed, or 2 for wrapper-side errors
// (bad arguments, unreadable config, output directory problems).
func exitCode(err error) int {
	var toolErr *merge.ExternalToolError
	if errors.As(err, &toolErr) && toolErr.ExitCode > 0 {
		return toolErr.ExitCode
	}
	if errors.As(err, &toolErr) {
		// Tool could not be started or exited via signal.
		return 1
	}
	return 2
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false // Assume not a regular file if we can't get the file info
	}
	return fileInfo.Mode().IsRegular()
}
