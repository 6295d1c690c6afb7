package schedule

import (
	"io"

	"github.com/vinayk028/astroplan/store"
)

// Service defines the core business logic interface for the daily
// schedule. The console talks to this interface only, so tests can
// substitute a fake and future surfaces can reuse the same operations.
type Service interface {
	// AddTask validates the raw text fields, rejects overlapping
	// intervals and records a reversible add command.
	AddTask(create *CreateTaskRequest) (*store.Task, error)

	// RemoveTask removes the first task in snapshot order whose
	// description matches case-insensitively, recording a reversible
	// remove command.
	RemoveTask(description string) (*store.Task, error)

	// EditTask revises the first task whose description matches
	// case-insensitively. Nil request fields keep the current value.
	// The revision keeps the task's id and listing position.
	EditTask(description string, revise *ReviseTaskRequest) (*store.Task, error)

	// Undo reverses the most recent add, remove or edit. It returns the
	// undone command, or nil when the history is empty.
	Undo() (Command, error)

	// Tasks returns the current snapshot in insertion order.
	Tasks() []*store.Task

	// FindTasks returns the tasks matching a CEL filter expression over
	// the variables description, priority, start and end.
	FindTasks(filterExpr string) ([]*store.Task, error)

	// RenderSchedule writes the fixed-width schedule table to w.
	RenderSchedule(w io.Writer) error
}

// CreateTaskRequest carries the raw text fields of a new task.
type CreateTaskRequest struct {
	Description string
	StartTime   string
	EndTime     string
	Priority    string
}

// ReviseTaskRequest carries the fields to change on an existing task.
// Nil fields keep the task's current value.
type ReviseTaskRequest struct {
	Description *string
	StartTime   *string
	EndTime     *string
	Priority    *string
}
