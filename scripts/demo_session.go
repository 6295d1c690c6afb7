//go:build ignore
// +build ignore

// demo_session is a manual end-to-end run of the organizer. It wires
// the full stack (notifier, store, journal, scheduler, console) and
// drives a scripted session through it, printing the transcript.
// NOT executed during CI (go test ./...).
//
// Usage:
//
//	go run scripts/demo_session.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/vinayk028/astroplan/console"
	"github.com/vinayk028/astroplan/internal/logging"
	"github.com/vinayk028/astroplan/schedule"
	"github.com/vinayk028/astroplan/store"
)

func main() {
	slog.SetDefault(logging.NewLogger(slog.LevelDebug, "text"))

	notifier := store.NewNotifier()
	taskStore := store.NewTaskStore(notifier)
	journal := schedule.NewJournal(20)
	notifier.Subscribe(schedule.NewLogObserver())
	notifier.Subscribe(journal)
	scheduler := schedule.New(taskStore)

	script := strings.Join([]string{
		"add 07:00 08:00 HIGH Morning Exercise",
		"add 09:00 10:00 MEDIUM Team Meeting",
		"add 09:30 10:30 LOW Training Session",
		"list",
		"edit team meeting -> - 10:30 HIGH",
		"find priority == 'HIGH'",
		"undo",
		"remove Morning Exercise",
		"undo",
		"history",
		"list",
		"exit",
	}, "\n")

	session := console.New(scheduler, journal, strings.NewReader(script), os.Stdout)
	if err := session.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "session failed: %v\n", err)
		os.Exit(1)
	}
}
