// Package store holds the in-memory task table and its change
// notification fan-out.
package store

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrDuplicateID marks an add whose id is already present. Ids are
	// generated, so hitting this means a caller reused a task value.
	ErrDuplicateID = errors.New("duplicate task id")
	// ErrNotFound marks a remove or update whose target id is absent.
	ErrNotFound = errors.New("task not found")
)

// TaskStore maps task id to task and keeps the insertion order used for
// listing. All methods are safe for concurrent use; check-then-mutate
// sequences are additionally serialized by the scheduler on top.
type TaskStore struct {
	mu       sync.RWMutex
	tasks    map[string]*Task
	order    []string
	notifier *Notifier
}

// NewTaskStore creates an empty store publishing committed changes
// through notifier. A nil notifier is replaced with a fresh one.
func NewTaskStore(notifier *Notifier) *TaskStore {
	if notifier == nil {
		notifier = NewNotifier()
	}
	return &TaskStore{
		tasks:    make(map[string]*Task),
		notifier: notifier,
	}
}

// Notifier returns the notifier this store publishes to.
func (s *TaskStore) Notifier() *Notifier {
	return s.notifier
}

// Add inserts the task under its id, then publishes an added change.
func (s *TaskStore) Add(task *Task) error {
	if task == nil {
		return errors.Wrap(ErrInvalidTask, "nil task")
	}
	stored := task.Clone()

	s.mu.Lock()
	if _, ok := s.tasks[stored.ID]; ok {
		s.mu.Unlock()
		return errors.Wrapf(ErrDuplicateID, "id %s", stored.ID)
	}
	s.tasks[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	s.mu.Unlock()

	s.notifier.Publish(Change{Kind: ChangeAdded, Task: stored.Clone()})
	return nil
}

// Remove deletes the task with the given id, then publishes a removed
// change. The removed task is returned so callers can build inverses.
func (s *TaskStore) Remove(id string) (*Task, error) {
	s.mu.Lock()
	removed, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return nil, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Publish(Change{Kind: ChangeRemoved, Task: removed.Clone()})
	return removed.Clone(), nil
}

// Update replaces the stored task carrying the same id, then publishes
// an updated change. The task keeps its listing position. The previous
// revision is returned for inverses.
func (s *TaskStore) Update(task *Task) (*Task, error) {
	if task == nil {
		return nil, errors.Wrap(ErrInvalidTask, "nil task")
	}
	revised := task.Clone()

	s.mu.Lock()
	previous, ok := s.tasks[revised.ID]
	if !ok {
		s.mu.Unlock()
		return nil, errors.Wrapf(ErrNotFound, "id %s", revised.ID)
	}
	s.tasks[revised.ID] = revised
	s.mu.Unlock()

	s.notifier.Publish(Change{Kind: ChangeUpdated, Task: revised.Clone(), Previous: previous.Clone()})
	return previous.Clone(), nil
}

// Get returns a copy of the task with the given id.
func (s *TaskStore) Get(id string) (*Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	return task.Clone(), true
}

// List returns a snapshot of all tasks as copies, in insertion order.
// The snapshot is independent of later mutations and can be iterated
// any number of times.
func (s *TaskStore) List() []*Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]*Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id].Clone())
	}
	return tasks
}

// Len returns the number of stored tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
