// Package validation normalizes and checks task and note input. It performs
// no I/O; every failure is a result.Failure of a validation kind.
package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/yukikurage/task-notes-api/internal/models"
	"github.com/yukikurage/task-notes-api/internal/result"
)

// TaskFields is task input that passed validation.
type TaskFields struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
}

// TaskContent is the title/description pair accepted by an edit.
type TaskContent struct {
	Title       string
	Description *string
}

// ValidateTaskInput checks a full task. status and priority arrive loosely
// typed from forms and JSON bodies and are parsed into closed types here.
func ValidateTaskInput(title, description string, status, priority any) (TaskFields, error) {
	content, err := ValidateTaskEdit(title, description)
	if err != nil {
		return TaskFields{}, err
	}
	s, err := ParseStatus(status)
	if err != nil {
		return TaskFields{}, err
	}
	p, err := ParsePriority(priority)
	if err != nil {
		return TaskFields{}, err
	}
	return TaskFields{
		Title:       content.Title,
		Description: content.Description,
		Status:      s,
		Priority:    p,
	}, nil
}

// ValidateTaskEdit checks the fields an edit may change.
func ValidateTaskEdit(title, description string) (TaskContent, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return TaskContent{}, result.ErrInvalidTitle
	}
	return TaskContent{Title: t, Description: NormalizeDescription(description)}, nil
}

// ValidateNoteInput returns the trimmed content.
func ValidateNoteInput(content string) (string, error) {
	c := strings.TrimSpace(content)
	if c == "" {
		return "", result.ErrInvalidContent
	}
	return c, nil
}

// NormalizeDescription trims and maps empty to absent.
func NormalizeDescription(description string) *string {
	d := strings.TrimSpace(description)
	if d == "" {
		return nil
	}
	return &d
}

// ParseStatus accepts only the exact enum spellings.
func ParseStatus(raw any) (models.TaskStatus, error) {
	var s models.TaskStatus
	switch v := raw.(type) {
	case string:
		s = models.TaskStatus(v)
	case models.TaskStatus:
		s = v
	default:
		return "", result.ErrInvalidStatus
	}
	if !s.Valid() {
		return "", result.ErrInvalidStatus
	}
	return s, nil
}

// ParsePriority coerces numbers and numeric strings; the value must be
// exactly 1, 2 or 3.
func ParsePriority(raw any) (models.TaskPriority, error) {
	var f float64
	switch v := raw.(type) {
	case models.TaskPriority:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, result.ErrInvalidPriority
		}
		f = n
	case string:
		n, ok := parseNumeric(v)
		if !ok {
			return 0, result.ErrInvalidPriority
		}
		f = n
	default:
		return 0, result.ErrInvalidPriority
	}
	if f != math.Trunc(f) {
		return 0, result.ErrInvalidPriority
	}
	p := models.TaskPriority(f)
	if float64(p) != f || !p.Valid() {
		return 0, result.ErrInvalidPriority
	}
	return p, nil
}

// parseNumeric reads a trimmed decimal number or an unsigned 0x/0o/0b
// integer literal. Digit separators and hex floats are rejected.
func parseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.Contains(s, "_") {
		return 0, false
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
