package store

import (
	"log/slog"
	"runtime/debug"
	"sync"
)

// ChangeKind tags a committed schedule change.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeUpdated ChangeKind = "updated"
)

// Change describes one committed store mutation. Task carries the task
// that was added or removed, or the current revision for updates;
// Previous is set only for updates.
type Change struct {
	Kind     ChangeKind
	Task     *Task
	Previous *Task
}

// Observer receives committed changes. Registration is by interface
// identity, so implementations must be comparable (pointer types are).
// Observers run inside the mutating call and must not call back into
// the store or the scheduler.
type Observer interface {
	HandleChange(change Change) error
}

// Notifier fans committed changes out to observers synchronously, in
// subscription order.
type Notifier struct {
	mu        sync.Mutex
	observers []Observer
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers the observer. Subscribing an already registered
// observer is a no-op.
func (n *Notifier) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, existing := range n.observers {
		if existing == observer {
			return
		}
	}
	n.observers = append(n.observers, observer)
}

// Unsubscribe deregisters the observer by identity. Unknown observers
// are ignored.
func (n *Notifier) Unsubscribe(observer Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, existing := range n.observers {
		if existing == observer {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

// Publish delivers the change to every observer in subscription order.
// An observer that returns an error or panics is logged and skipped;
// the remaining observers still run, and the mutation that produced the
// change is never rolled back.
func (n *Notifier) Publish(change Change) {
	n.mu.Lock()
	observers := make([]Observer, len(n.observers))
	copy(observers, n.observers)
	n.mu.Unlock()

	for _, observer := range observers {
		notifyOne(observer, change)
	}
}

func notifyOne(observer Observer, change Change) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("observer panicked",
				"change", string(change.Kind),
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()

	if err := observer.HandleChange(change); err != nil {
		slog.Warn("observer failed",
			"change", string(change.Kind),
			"error", err,
		)
	}
}
