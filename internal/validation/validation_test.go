package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-notes-api/internal/models"
	"github.com/yukikurage/task-notes-api/internal/result"
)

func TestValidateTaskInput_Valid(t *testing.T) {
	fields, err := ValidateTaskInput("  Ship release ", "  ", "TODO", 3)
	require.NoError(t, err)

	assert.Equal(t, "Ship release", fields.Title)
	assert.Nil(t, fields.Description)
	assert.Equal(t, models.TaskStatusTodo, fields.Status)
	assert.Equal(t, models.TaskPriorityHigh, fields.Priority)
}

func TestValidateTaskInput_AllStatusesAndPriorities(t *testing.T) {
	for _, status := range models.TaskStatuses {
		for _, priority := range []int{1, 2, 3} {
			fields, err := ValidateTaskInput("title", "desc", string(status), priority)
			require.NoError(t, err)
			assert.Equal(t, status, fields.Status)
			assert.Equal(t, models.TaskPriority(priority), fields.Priority)
			require.NotNil(t, fields.Description)
			assert.Equal(t, "desc", *fields.Description)
		}
	}
}

func TestValidateTaskInput_Failures(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		status   any
		priority any
		want     result.Kind
	}{
		{"empty title", "", "TODO", 1, result.KindInvalidTitle},
		{"blank title", " \t\n", "TODO", 1, result.KindInvalidTitle},
		{"lowercase status", "t", "todo", 1, result.KindInvalidStatus},
		{"unknown status", "t", "BLOCKED", 1, result.KindInvalidStatus},
		{"missing status", "t", nil, 1, result.KindInvalidStatus},
		{"numeric status", "t", 1, 1, result.KindInvalidStatus},
		{"priority zero", "t", "DONE", 0, result.KindInvalidPriority},
		{"priority four", "t", "DONE", 4, result.KindInvalidPriority},
		{"priority word", "t", "DONE", "high", result.KindInvalidPriority},
		{"priority fraction", "t", "DONE", 2.5, result.KindInvalidPriority},
		{"priority empty string", "t", "DONE", "", result.KindInvalidPriority},
		{"priority missing", "t", "DONE", nil, result.KindInvalidPriority},
		{"priority bool", "t", "DONE", true, result.KindInvalidPriority},
		{"priority hex out of range", "t", "DONE", "0x4", result.KindInvalidPriority},
		{"priority hex float", "t", "DONE", "0x1p0", result.KindInvalidPriority},
		{"priority digit separator", "t", "DONE", "0b1_1", result.KindInvalidPriority},
		{"priority bare prefix", "t", "DONE", "0x", result.KindInvalidPriority},
		{"priority signed hex", "t", "DONE", "-0x1", result.KindInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateTaskInput(tt.title, "", tt.status, tt.priority)
			require.Error(t, err)
			assert.Equal(t, tt.want, result.KindOf(err))
		})
	}
}

func TestValidateTaskInput_TitleCheckedFirst(t *testing.T) {
	_, err := ValidateTaskInput("", "", "nope", 9)
	assert.Equal(t, result.KindInvalidTitle, result.KindOf(err))
}

func TestParsePriority_Coercion(t *testing.T) {
	tests := []struct {
		raw  any
		want models.TaskPriority
	}{
		{"1", models.TaskPriorityLow},
		{" 2 ", models.TaskPriorityMedium},
		{"3.0", models.TaskPriorityHigh},
		{"1e0", models.TaskPriorityLow},
		{"0x3", models.TaskPriorityHigh},
		{" 0X2 ", models.TaskPriorityMedium},
		{"0o1", models.TaskPriorityLow},
		{"0b11", models.TaskPriorityHigh},
		{float64(2), models.TaskPriorityMedium},
		{json.Number("3"), models.TaskPriorityHigh},
		{int64(1), models.TaskPriorityLow},
		{models.TaskPriorityMedium, models.TaskPriorityMedium},
	}

	for _, tt := range tests {
		got, err := ParsePriority(tt.raw)
		require.NoError(t, err, "%v", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestValidateTaskEdit(t *testing.T) {
	content, err := ValidateTaskEdit(" New title ", " details ")
	require.NoError(t, err)
	assert.Equal(t, "New title", content.Title)
	require.NotNil(t, content.Description)
	assert.Equal(t, "details", *content.Description)

	_, err = ValidateTaskEdit("   ", "details")
	assert.Equal(t, result.KindInvalidTitle, result.KindOf(err))
}

func TestValidateNoteInput(t *testing.T) {
	content, err := ValidateNoteInput("  remember the milk  ")
	require.NoError(t, err)
	assert.Equal(t, "remember the milk", content)

	for _, raw := range []string{"", "   ", "\n\t"} {
		_, err := ValidateNoteInput(raw)
		assert.Equal(t, result.KindInvalidContent, result.KindOf(err))
	}
}
