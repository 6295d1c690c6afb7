// Package console implements the interactive organizer session: a
// line-oriented loop translating user commands into scheduler calls.
// User-facing output goes to the session writer; diagnostics go to slog.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/vinayk028/astroplan/schedule"
)

const prompt = "astroplan> "

// Console is one interactive session over a scheduler.
type Console struct {
	svc     schedule.Service
	journal *schedule.Journal
	in      io.Reader
	out     io.Writer
}

// New creates a session reading commands from in and writing user
// output to out. A nil journal disables the history command.
func New(svc schedule.Service, journal *schedule.Journal, in io.Reader, out io.Writer) *Console {
	return &Console{svc: svc, journal: journal, in: in, out: out}
}

// Run processes commands until exit, end of input or context
// cancellation. Cancellation takes effect between commands since the
// fan-out of a running command is synchronous.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, `Type "help" for the command list.`)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			slog.Warn("input read failed", "error", err)
		}
	}()

	for {
		fmt.Fprint(c.out, prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := c.handleLine(line); quit {
				return nil
			}
		}
	}
}

// handleLine dispatches one command line and reports whether the
// session should end.
func (c *Console) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	verb := line
	rest := ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		verb, rest = line[:i], strings.TrimSpace(line[i+1:])
	}

	switch strings.ToLower(verb) {
	case "add":
		c.handleAdd(rest)
	case "remove", "rm":
		c.handleRemove(rest)
	case "edit":
		c.handleEdit(rest)
	case "list", "ls":
		c.handleList()
	case "find":
		c.handleFind(rest)
	case "history":
		c.handleHistory()
	case "undo":
		c.handleUndo()
	case "help", "?":
		c.printHelp()
	case "exit", "quit":
		return true
	default:
		fmt.Fprintf(c.out, "Unknown command %q. Type \"help\" for the command list.\n", verb)
	}
	return false
}

func (c *Console) handleAdd(rest string) {
	fields := strings.Fields(rest)
	if len(fields) < 4 {
		fmt.Fprintln(c.out, "Usage: add <start> <end> <priority> <description>")
		return
	}

	task, err := c.svc.AddTask(&schedule.CreateTaskRequest{
		StartTime:   fields[0],
		EndTime:     fields[1],
		Priority:    fields[2],
		Description: strings.Join(fields[3:], " "),
	})
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintf(c.out, "Added %q %s %s.\n", task.Description, task.Interval(), task.Priority)
}

func (c *Console) handleRemove(rest string) {
	if rest == "" {
		fmt.Fprintln(c.out, "Usage: remove <description>")
		return
	}

	task, err := c.svc.RemoveTask(rest)
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintf(c.out, "Removed %q.\n", task.Description)
}

func (c *Console) handleEdit(rest string) {
	target, spec, ok := strings.Cut(rest, "->")
	fields := strings.Fields(spec)
	if !ok || strings.TrimSpace(target) == "" || len(fields) < 3 {
		fmt.Fprintln(c.out, "Usage: edit <description> -> <start> <end> <priority> [new description]")
		fmt.Fprintln(c.out, `Use "-" for any field to keep its current value.`)
		return
	}

	revise := &schedule.ReviseTaskRequest{
		StartTime: optField(fields[0]),
		EndTime:   optField(fields[1]),
		Priority:  optField(fields[2]),
	}
	if len(fields) > 3 {
		revise.Description = optField(strings.Join(fields[3:], " "))
	}

	task, err := c.svc.EditTask(strings.TrimSpace(target), revise)
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintf(c.out, "Updated %q %s %s.\n", task.Description, task.Interval(), task.Priority)
}

func (c *Console) handleList() {
	if err := c.svc.RenderSchedule(c.out); err != nil {
		c.reportError(err)
	}
}

func (c *Console) handleFind(rest string) {
	if rest == "" {
		fmt.Fprintln(c.out, "Usage: find <expression>, e.g. find priority == 'HIGH'")
		return
	}

	tasks, err := c.svc.FindTasks(rest)
	if err != nil {
		c.reportError(err)
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintln(c.out, "No matching tasks.")
		return
	}
	if err := schedule.RenderTable(c.out, tasks, time.Now()); err != nil {
		c.reportError(err)
	}
}

func (c *Console) handleHistory() {
	if c.journal == nil {
		fmt.Fprintln(c.out, "History is not available in this session.")
		return
	}

	entries := c.journal.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No changes recorded.")
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(c.out, "%s  %-8s %s\n", entry.At.Format("15:04:05"), entry.Kind, entry.Summary)
	}
}

func (c *Console) handleUndo() {
	cmd, err := c.svc.Undo()
	if err != nil {
		c.reportError(err)
		return
	}
	if cmd == nil {
		fmt.Fprintln(c.out, "Nothing to undo.")
		return
	}
	fmt.Fprintf(c.out, "Undid %s.\n", cmd.Describe())
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `Commands:
  add <start> <end> <priority> <description>      schedule a task, e.g. add 07:00 08:00 HIGH Morning Exercise
  remove <description>                            remove a task by description (case-insensitive)
  edit <description> -> <start> <end> <priority> [new description]
                                                  revise a task; "-" keeps a field unchanged
  list                                            show the schedule table
  find <expression>                               show tasks matching a filter, e.g. find priority == 'HIGH'
  history                                         show recent changes
  undo                                            reverse the most recent add/remove/edit
  help                                            show this message
  exit                                            leave the session
`)
}

func (c *Console) reportError(err error) {
	fmt.Fprintf(c.out, "Error: %v\n", err)
}

// optField maps the "keep current value" placeholder to nil.
func optField(v string) *string {
	if v == "" || v == "-" {
		return nil
	}
	return &v
}
