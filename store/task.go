package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrInvalidTask marks rejected task input: malformed times, an unknown
// priority label, an empty description, or an inverted interval.
var ErrInvalidTask = errors.New("invalid task")

// Priority ranks how critical a task is.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// ParsePriority maps user text to a Priority, case-insensitively.
func ParsePriority(text string) (Priority, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case string(PriorityHigh):
		return PriorityHigh, nil
	case string(PriorityMedium):
		return PriorityMedium, nil
	case string(PriorityLow):
		return PriorityLow, nil
	default:
		return "", errors.Wrapf(ErrInvalidTask, "unknown priority %q, want HIGH, MEDIUM or LOW", text)
	}
}

const timeOfDayLayout = "15:04"

// TimeOfDay is a clock time expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" clock text.
func ParseTimeOfDay(text string) (TimeOfDay, error) {
	parsed, err := time.Parse(timeOfDayLayout, strings.TrimSpace(text))
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidTask, "malformed time %q, want HH:MM", text)
	}
	return TimeOfDay(parsed.Hour()*60 + parsed.Minute()), nil
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// String renders the zero-padded HH:MM form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Task is one scheduled activity. A Task value is immutable once
// constructed; editing produces a new revision carrying the same ID.
type Task struct {
	ID          string
	Description string
	Start       TimeOfDay
	End         TimeOfDay
	Priority    Priority
}

// NewTask validates the given text fields and builds a task with a
// freshly generated id. All validation failures are ErrInvalidTask.
func NewTask(description, startText, endText, priorityText string) (*Task, error) {
	return newTask(uuid.NewString(), description, startText, endText, priorityText)
}

// Revise builds a new revision of t with the given fields, keeping the id.
func (t *Task) Revise(description, startText, endText, priorityText string) (*Task, error) {
	return newTask(t.ID, description, startText, endText, priorityText)
}

func newTask(id, description, startText, endText, priorityText string) (*Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors.Wrap(ErrInvalidTask, "description must not be empty")
	}

	start, err := ParseTimeOfDay(startText)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay(endText)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, errors.Wrapf(ErrInvalidTask, "start %s must be before end %s", start, end)
	}

	priority, err := ParsePriority(priorityText)
	if err != nil {
		return nil, err
	}

	return &Task{
		ID:          id,
		Description: description,
		Start:       start,
		End:         end,
		Priority:    priority,
	}, nil
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

// Interval renders the half-open interval for messages, e.g. "[07:00, 08:00)".
func (t *Task) Interval() string {
	return fmt.Sprintf("[%s, %s)", t.Start, t.End)
}
