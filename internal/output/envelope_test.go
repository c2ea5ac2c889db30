package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
)

func TestFromResult_JSONRoundTrip(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	env := FromResult("json", "task.add", map[string]string{"id": "T001"}, now)

	var buf bytes.Buffer
	require.NoError(t, env.Write(&buf, "json"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["success"])
	meta := decoded["_meta"].(map[string]any)
	assert.Equal(t, "task.add", meta["command"])
	assert.Equal(t, 0, env.ExitCode())
}

func TestFromError_CarriesCoreErrorFields(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	err := model.ErrNotFound("task_not_found", "task %s not found", "T999")
	env := FromError("json", "task.complete", err, now)

	require.NotNil(t, env.Error)
	assert.False(t, env.Success)
	assert.Equal(t, "task_not_found", env.Error.Code)
	assert.Equal(t, exitcode.NotFound, env.Error.ExitCode)
	assert.Equal(t, exitcode.NotFound, env.ExitCode())
}

func TestFromError_UnclassifiedErrorDefaultsToExitOne(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	env := FromError("text", "task.add", assert.AnError, now)

	assert.Equal(t, 1, env.ExitCode())
	var buf bytes.Buffer
	require.NoError(t, env.Write(&buf, "text"))
	assert.Contains(t, buf.String(), "error:")
}

func TestWriteText_SuccessPrintsPayload(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	env := FromResult("text", "task.list", "T001 T002", now)

	var buf bytes.Buffer
	require.NoError(t, env.Write(&buf, "text"))
	assert.Equal(t, "T001 T002\n", buf.String())
}
