package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args against a fresh project rooted
// at the test's temp dir and returns stdout plus any error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--format", "json"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestInit_CreatesProjectAndRejectsDoubleInit(t *testing.T) {
	out, err := run(t, "init", "--name", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, `"success": true`)
	assert.Contains(t, out, "demo")

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--format", "json", "init"})
	require.Error(t, cmd.Execute())
	assert.Contains(t, buf.String(), "already_initialized")
}

func TestTaskAdd_ThenComplete(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--format", "json", "init"})
	require.NoError(t, cmd.Execute())

	cmd = NewRootCmd()
	buf.Reset()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--format", "json", "task", "add", "Write the launch doc", "--type", "epic"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"id"`)

	cmd = NewRootCmd()
	buf.Reset()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--format", "json", "task", "complete", "T001", "--note", "done"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"success": true`)
}

func TestConfigGetSet_RoundTrips(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--format", "json", "init"})
	require.NoError(t, cmd.Execute())

	cmd = NewRootCmd()
	buf.Reset()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--format", "json", "config", "set", "archive.daysUntilArchive", "30"})
	require.NoError(t, cmd.Execute())

	cmd = NewRootCmd()
	buf.Reset()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--format", "json", "config", "get", "archive.daysUntilArchive"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "30")
}
