// Package schedule implements the daily schedule organizer: conflict
// detection, reversible commands with a linear undo history, filtered
// queries and table rendering over one task store.
package schedule

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/vinayk028/astroplan/store"
)

// Scheduler implements Service over one task store and one command log.
// A single mutex spans conflict check, mutation and history
// bookkeeping, so concurrent callers cannot interleave
// check-then-insert.
type Scheduler struct {
	mu    sync.Mutex
	uid   string
	store *store.TaskStore
	log   *CommandLog
}

// New creates a scheduler owning the undo history for the given store.
func New(st *store.TaskStore) *Scheduler {
	return &Scheduler{
		uid:   shortuuid.New(),
		store: st,
		log:   NewCommandLog(),
	}
}

// UID identifies this scheduler instance in log records.
func (s *Scheduler) UID() string {
	return s.uid
}

func (s *Scheduler) AddTask(create *CreateTaskRequest) (*store.Task, error) {
	if create == nil {
		return nil, errors.Wrap(store.ErrInvalidTask, "nil create request")
	}

	task, err := store.NewTask(create.Description, create.StartTime, create.EndTime, create.Priority)
	if err != nil {
		slog.Warn("task rejected", "scheduler", s.uid, "description", create.Description, "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if conflicts := FindConflicts(task, s.store.List(), nil); len(conflicts) > 0 {
		err := conflictError(task, conflicts)
		slog.Warn("task rejected", "scheduler", s.uid, "description", task.Description, "error", err)
		return nil, err
	}

	cmd := NewAddCommand(s.store, task)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	s.log.Push(cmd)

	slog.Info("task added",
		"scheduler", s.uid,
		"description", task.Description,
		"interval", task.Interval(),
		"priority", string(task.Priority),
	)
	return task.Clone(), nil
}

func (s *Scheduler) RemoveTask(description string) (*store.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findByDescription(description)
	if task == nil {
		err := errors.Wrapf(store.ErrNotFound, "no task matching %q", description)
		slog.Warn("remove rejected", "scheduler", s.uid, "description", description)
		return nil, err
	}

	cmd := NewRemoveCommand(s.store, task)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	s.log.Push(cmd)

	slog.Info("task removed", "scheduler", s.uid, "description", task.Description)
	return task, nil
}

func (s *Scheduler) EditTask(description string, revise *ReviseTaskRequest) (*store.Task, error) {
	if revise == nil {
		return nil, errors.Wrap(store.ErrInvalidTask, "nil revise request")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.findByDescription(description)
	if target == nil {
		err := errors.Wrapf(store.ErrNotFound, "no task matching %q", description)
		slog.Warn("edit rejected", "scheduler", s.uid, "description", description)
		return nil, err
	}

	revision, err := target.Revise(
		valueOr(revise.Description, target.Description),
		valueOr(revise.StartTime, target.Start.String()),
		valueOr(revise.EndTime, target.End.String()),
		valueOr(revise.Priority, string(target.Priority)),
	)
	if err != nil {
		slog.Warn("edit rejected", "scheduler", s.uid, "description", target.Description, "error", err)
		return nil, err
	}

	if conflicts := FindConflicts(revision, s.store.List(), []string{target.ID}); len(conflicts) > 0 {
		err := conflictError(revision, conflicts)
		slog.Warn("edit rejected", "scheduler", s.uid, "description", revision.Description, "error", err)
		return nil, err
	}

	cmd := NewEditCommand(s.store, revision)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	s.log.Push(cmd)

	slog.Info("task updated",
		"scheduler", s.uid,
		"description", revision.Description,
		"interval", revision.Interval(),
		"priority", string(revision.Priority),
	)
	return revision.Clone(), nil
}

func (s *Scheduler) Undo() (Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, err := s.log.PopAndUndo()
	if err != nil {
		slog.Error("undo failed", "scheduler", s.uid, "command", cmd.Describe(), "error", err)
		return cmd, err
	}
	if cmd == nil {
		slog.Info("nothing to undo", "scheduler", s.uid)
		return nil, nil
	}

	slog.Info("command undone", "scheduler", s.uid, "command", cmd.Describe())
	return cmd, nil
}

func (s *Scheduler) Tasks() []*store.Task {
	return s.store.List()
}

func (s *Scheduler) FindTasks(filterExpr string) ([]*store.Task, error) {
	filter, err := CompileFilter(filterExpr)
	if err != nil {
		slog.Warn("filter rejected", "scheduler", s.uid, "filter", filterExpr, "error", err)
		return nil, err
	}

	var matched []*store.Task
	for _, task := range s.store.List() {
		ok, err := filter.Matches(task)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

func (s *Scheduler) RenderSchedule(w io.Writer) error {
	return RenderTable(w, s.store.List(), time.Now())
}

// findByDescription returns the first task in snapshot order whose
// description equals the needle case-insensitively, or nil.
func (s *Scheduler) findByDescription(description string) *store.Task {
	needle := strings.TrimSpace(description)
	for _, task := range s.store.List() {
		if strings.EqualFold(task.Description, needle) {
			return task
		}
	}
	return nil
}

func valueOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
