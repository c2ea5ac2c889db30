package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskBuilder_Build(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		build   func() *TaskBuilder
		wantErr bool
	}{
		{
			name: "minimal valid task",
			build: func() *TaskBuilder {
				return NewTaskBuilder("T001", "Write the launcher").CreatedAt(now)
			},
			wantErr: false,
		},
		{
			name: "title too short",
			build: func() *TaskBuilder {
				return NewTaskBuilder("T001", "ab").CreatedAt(now)
			},
			wantErr: true,
		},
		{
			name: "bad id shape",
			build: func() *TaskBuilder {
				return NewTaskBuilder("X1", "Valid title here").CreatedAt(now)
			},
			wantErr: true,
		},
		{
			name: "blocked without blockedBy",
			build: func() *TaskBuilder {
				return NewTaskBuilder("T002", "Needs a reason").CreatedAt(now).Status(StatusBlocked)
			},
			wantErr: true,
		},
		{
			name: "blocked with blockedBy passes",
			build: func() *TaskBuilder {
				return NewTaskBuilder("T002", "Needs a reason").CreatedAt(now).
					Status(StatusBlocked).BlockedBy("waiting on T001")
			},
			wantErr: false,
		},
		{
			name: "subtask without parent",
			build: func() *TaskBuilder {
				return NewTaskBuilder("T003", "Orphan subtask").CreatedAt(now).Type(TypeSubtask)
			},
			wantErr: true,
		},
		{
			name: "invalid priority",
			build: func() *TaskBuilder {
				return NewTaskBuilder("T004", "Bad priority here").CreatedAt(now).Priority("urgent")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := tt.build().Build()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, task)
			assert.True(t, task.Status.Valid())
			assert.True(t, task.Priority.Valid())
		})
	}
}

func TestTaskBuilder_CompletedRequiresCompletedAt(t *testing.T) {
	now := time.Now()
	_, err := NewTaskBuilder("T010", "Finish the thing").CreatedAt(now).Status(StatusDone).Build()
	assert.Error(t, err)
}
