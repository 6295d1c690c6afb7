package schedule

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vinayk028/astroplan/store"
)

// LogObserver mirrors every committed change to slog at info level.
type LogObserver struct{}

func NewLogObserver() *LogObserver {
	return &LogObserver{}
}

func (o *LogObserver) HandleChange(change store.Change) error {
	attrs := []any{"change", string(change.Kind)}
	if change.Task != nil {
		attrs = append(attrs,
			"description", change.Task.Description,
			"interval", change.Task.Interval(),
		)
	}
	if change.Previous != nil {
		attrs = append(attrs, "previous_interval", change.Previous.Interval())
	}
	slog.Info("schedule changed", attrs...)
	return nil
}

// JournalEntry is one recorded change.
type JournalEntry struct {
	At      time.Time
	Kind    store.ChangeKind
	Summary string
}

// Journal is a bounded in-process record of recent changes, oldest
// first. It implements store.Observer; the console reads it for the
// history command.
type Journal struct {
	mu      sync.Mutex
	limit   int
	entries []JournalEntry
}

// NewJournal creates a journal keeping at most limit entries. Limits
// below 1 fall back to 50.
func NewJournal(limit int) *Journal {
	if limit < 1 {
		limit = 50
	}
	return &Journal{limit: limit}
}

func (j *Journal) HandleChange(change store.Change) error {
	entry := JournalEntry{
		At:      time.Now(),
		Kind:    change.Kind,
		Summary: summarizeChange(change),
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
	if len(j.entries) > j.limit {
		j.entries = j.entries[len(j.entries)-j.limit:]
	}
	return nil
}

// Entries returns a copy of the recorded entries, oldest first.
func (j *Journal) Entries() []JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	entries := make([]JournalEntry, len(j.entries))
	copy(entries, j.entries)
	return entries
}

func summarizeChange(change store.Change) string {
	if change.Task == nil {
		return string(change.Kind)
	}
	if change.Kind == store.ChangeUpdated && change.Previous != nil {
		return fmt.Sprintf("%q %s %s to %q %s %s",
			change.Previous.Description, change.Previous.Interval(), change.Previous.Priority,
			change.Task.Description, change.Task.Interval(), change.Task.Priority)
	}
	return fmt.Sprintf("%q %s %s", change.Task.Description, change.Task.Interval(), change.Task.Priority)
}
