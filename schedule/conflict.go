package schedule

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/vinayk028/astroplan/store"
)

// ErrConflict marks an add or edit whose interval overlaps a stored task.
var ErrConflict = errors.New("schedule conflict")

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
// Using [start, end) convention: overlap when a.start < b.end AND b.start < a.end.
// Intervals that only touch at a boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd store.TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

// FindConflicts returns every task in existing whose interval overlaps
// the candidate's, in listing order. Tasks whose id appears in
// excludeIDs are skipped, so a revision never conflicts with the task
// it replaces.
func FindConflicts(candidate *store.Task, existing []*store.Task, excludeIDs []string) []*store.Task {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	var conflicts []*store.Task
	for _, task := range existing {
		if excluded[task.ID] {
			continue
		}
		if Overlaps(candidate.Start, candidate.End, task.Start, task.End) {
			conflicts = append(conflicts, task)
		}
	}
	return conflicts
}

// conflictError wraps ErrConflict with a message naming the conflicting tasks.
func conflictError(candidate *store.Task, conflicts []*store.Task) error {
	if len(conflicts) == 1 {
		c := conflicts[0]
		return errors.Wrapf(ErrConflict, "%q %s conflicts with existing task %q %s",
			candidate.Description, candidate.Interval(), c.Description, c.Interval())
	}

	var labels []string
	for _, c := range conflicts {
		labels = append(labels, fmt.Sprintf("%q %s", c.Description, c.Interval()))
	}
	return errors.Wrapf(ErrConflict, "%q %s conflicts with %d existing tasks: %s",
		candidate.Description, candidate.Interval(), len(conflicts), strings.Join(labels, ", "))
}
