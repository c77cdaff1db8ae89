package merge

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeRunner records the invocation and plays back a canned result.
type fakeRunner struct {
	name     string
	args     []string
	called   bool
	stderr   string
	exitCode int
	err      error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) (int, error) {
	f.called = true
	f.name = name
	f.args = args
	if f.stderr != "" {
		_, _ = io.WriteString(stderr, f.stderr)
	}
	return f.exitCode, f.err
}

func TestExecute_Success(t *testing.T) {
	tmpDir := t.TempDir()
	output := filepath.Join(tmpDir, "merged", "survey.laz")
	runner := &fakeRunner{}

	res, err := Execute(context.Background(), Arguments{
		Tool:   "pdal",
		Inputs: []string{"a.laz", "b.laz", "c.laz"},
		Output: output,
		Stdout: io.Discard,
		Stderr: io.Discard,
		Runner: runner,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "pdal", runner.name)
	assert.Equal(t, []string{"merge", "a.laz", "b.laz", "c.laz", output}, runner.args)

	// The output directory was created before invocation.
	info, err := os.Stat(filepath.Dir(output))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExecute_ToolFailure(t *testing.T) {
	tmpDir := t.TempDir()
	runner := &fakeRunner{
		stderr:   "readers.las: file not found\n",
		exitCode: 3,
		err:      errors.New("exit status 3"),
	}

	_, err := Execute(context.Background(), Arguments{
		Inputs: []string{"missing.laz"},
		Output: filepath.Join(tmpDir, "merged.laz"),
		Stdout: io.Discard,
		Stderr: io.Discard,
		Runner: runner,
	}, zaptest.NewLogger(t))
	require.Error(t, err)

	var toolErr *ExternalToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, 3, toolErr.ExitCode)
	assert.Equal(t, "readers.las: file not found\n", toolErr.Stderr)
	assert.Equal(t, DefaultTool, toolErr.Tool)
}

func TestExecute_StderrStaysVisible(t *testing.T) {
	tmpDir := t.TempDir()
	var stream bytes.Buffer
	runner := &fakeRunner{stderr: "warning: overlapping tiles\n"}

	res, err := Execute(context.Background(), Arguments{
		Inputs: []string{"a.laz"},
		Output: filepath.Join(tmpDir, "merged.laz"),
		Stdout: io.Discard,
		Stderr: &stream,
		Runner: runner,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	// Diagnostics reach the configured stream and the captured result alike.
	assert.Equal(t, "warning: overlapping tiles\n", stream.String())
	assert.Equal(t, "warning: overlapping tiles\n", res.Stderr)
}

func TestExecute_InvalidJobSkipsInvocation(t *testing.T) {
	runner := &fakeRunner{}

	_, err := Execute(context.Background(), Arguments{
		Inputs: nil,
		Output: "merged.laz",
		Runner: runner,
	}, zaptest.NewLogger(t))

	assert.Error(t, err)
	assert.False(t, runner.called)
}

func TestExecute_OutputDirCollisionSkipsInvocation(t *testing.T) {
	tmpDir := t.TempDir()
	collision := filepath.Join(tmpDir, "merged")
	require.NoError(t, os.WriteFile(collision, []byte("not a directory"), 0o644))

	runner := &fakeRunner{}
	_, err := Execute(context.Background(), Arguments{
		Inputs: []string{"a.laz"},
		Output: filepath.Join(collision, "survey.laz"),
		Runner: runner,
	}, zaptest.NewLogger(t))
	require.Error(t, err)

	var fsErr *FilesystemError
	assert.ErrorAs(t, err, &fsErr)
	assert.False(t, runner.called)
}

func TestEnsureOutputDirectory_Idempotent(t *testing.T) {
	logger := zaptest.NewLogger(t)
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, EnsureOutputDirectory(dir, logger))
	require.NoError(t, EnsureOutputDirectory(dir, logger))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureOutputDirectory_FileCollision(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "taken")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := EnsureOutputDirectory(file, zaptest.NewLogger(t))
	require.Error(t, err)

	var fsErr *FilesystemError
	require.ErrorAs(t, err, &fsErr)
	assert.Equal(t, file, fsErr.Path)
}

func TestEnsureOutputDirectory_RelativeOutputNoDir(t *testing.T) {
	// An output like "merged.laz" has "." as its parent; nothing to create.
	assert.NoError(t, EnsureOutputDirectory(".", zaptest.NewLogger(t)))
	assert.NoError(t, EnsureOutputDirectory("", zaptest.NewLogger(t)))
}
