package schedule

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vinayk028/astroplan/store"
)

func TestRenderTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTable(&buf, nil, time.Now()); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got := buf.String(); got != "No tasks scheduled.\n" {
		t.Errorf("expected empty schedule message, got %q", got)
	}
}

func TestRenderTable_Layout(t *testing.T) {
	day := time.Date(2026, time.August, 22, 10, 0, 0, 0, time.UTC)
	tasks := []*store.Task{
		mustTask(t, "Morning Exercise", "07:00", "08:00", "HIGH"),
		mustTask(t, "Team Meeting", "09:00", "10:00", "MEDIUM"),
	}

	var buf bytes.Buffer
	if err := RenderTable(&buf, tasks, day); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines", len(lines))
	}

	wantHeader := fmt.Sprintf("%-12s %-12s %-12s %-30s %-10s",
		"Date", "StartTime", "EndTime", "Description", "Priority")
	if lines[0] != wantHeader {
		t.Errorf("header mismatch:\n got %q\nwant %q", lines[0], wantHeader)
	}

	if lines[1] != strings.Repeat("-", 80) {
		t.Errorf("separator should be 80 dashes, got %q", lines[1])
	}

	wantRow := fmt.Sprintf("%-12s %-12s %-12s %-30s %-10s",
		"2026-08-22", "07:00", "08:00", "Morning Exercise", "HIGH")
	if lines[2] != wantRow {
		t.Errorf("row mismatch:\n got %q\nwant %q", lines[2], wantRow)
	}

	if !strings.Contains(lines[3], "Team Meeting") || !strings.Contains(lines[3], "MEDIUM") {
		t.Errorf("second row should carry the meeting: %q", lines[3])
	}
}

func TestRenderTable_RowOrderFollowsInput(t *testing.T) {
	day := time.Date(2026, time.August, 22, 0, 0, 0, 0, time.UTC)
	tasks := []*store.Task{
		mustTask(t, "Team Meeting", "09:00", "10:00", "MEDIUM"),
		mustTask(t, "Morning Exercise", "07:00", "08:00", "HIGH"),
	}

	var buf bytes.Buffer
	if err := RenderTable(&buf, tasks, day); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	output := buf.String()
	meetingAt := strings.Index(output, "Team Meeting")
	exerciseAt := strings.Index(output, "Morning Exercise")
	if meetingAt < 0 || exerciseAt < 0 {
		t.Fatalf("missing rows in output:\n%s", output)
	}
	if meetingAt > exerciseAt {
		t.Errorf("rows must keep the given order, not clock order:\n%s", output)
	}
}

func TestRenderTable_LongDescription(t *testing.T) {
	day := time.Date(2026, time.August, 22, 0, 0, 0, 0, time.UTC)
	long := "Extravehicular Activity Suit Pressure Check"
	tasks := []*store.Task{mustTask(t, long, "07:00", "08:00", "HIGH")}

	var buf bytes.Buffer
	if err := RenderTable(&buf, tasks, day); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), long) {
		t.Errorf("long descriptions must not be truncated:\n%s", buf.String())
	}
}
