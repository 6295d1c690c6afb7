package schedule

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vinayk028/astroplan/store"
)

const (
	tableRowFormat  = "%-12s %-12s %-12s %-30s %-10s\n"
	tableDateLayout = "2006-01-02"

	emptyScheduleMessage = "No tasks scheduled."
)

// RenderTable writes the fixed-width schedule table for tasks to w, in
// the given order. Tasks carry clock times only, so the Date column
// always shows the given day (the callers pass today).
func RenderTable(w io.Writer, tasks []*store.Task, day time.Time) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, emptyScheduleMessage)
		return err
	}

	if _, err := fmt.Fprintf(w, tableRowFormat, "Date", "StartTime", "EndTime", "Description", "Priority"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 80)); err != nil {
		return err
	}

	date := day.Format(tableDateLayout)
	for _, task := range tasks {
		_, err := fmt.Fprintf(w, tableRowFormat,
			date,
			task.Start.String(),
			task.End.String(),
			task.Description,
			string(task.Priority),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
