package schedule

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vinayk028/astroplan/store"
)

// CommandState tracks a command through its lifecycle.
type CommandState string

const (
	CommandCreated  CommandState = "created"
	CommandExecuted CommandState = "executed"
	CommandUndone   CommandState = "undone"
)

// Command is one reversible schedule mutation. Execute applies the
// forward mutation, Undo the exact inverse. A command moves through
// created -> executed -> undone; any other transition fails.
type Command interface {
	Execute() error
	Undo() error
	State() CommandState
	// Describe names the mutation for logs and prompts, e.g. `add "Team Meeting"`.
	Describe() string
}

// AddCommand inserts a task on execute and removes it again on undo.
type AddCommand struct {
	store *store.TaskStore
	task  *store.Task
	state CommandState
}

func NewAddCommand(st *store.TaskStore, task *store.Task) *AddCommand {
	return &AddCommand{store: st, task: task, state: CommandCreated}
}

func (c *AddCommand) Execute() error {
	if c.state != CommandCreated {
		return errors.Errorf("can only execute a created command, state is %s", c.state)
	}
	if err := c.store.Add(c.task); err != nil {
		return err
	}
	c.state = CommandExecuted
	return nil
}

func (c *AddCommand) Undo() error {
	if c.state != CommandExecuted {
		return errors.Errorf("can only undo an executed command, state is %s", c.state)
	}
	if _, err := c.store.Remove(c.task.ID); err != nil {
		return err
	}
	c.state = CommandUndone
	return nil
}

func (c *AddCommand) State() CommandState {
	return c.state
}

func (c *AddCommand) Describe() string {
	return fmt.Sprintf("add %q %s", c.task.Description, c.task.Interval())
}

// RemoveCommand deletes a task on execute and reinserts it on undo.
// The reinserted task keeps its id and attributes but re-enters at the
// tail of the listing order.
type RemoveCommand struct {
	store *store.TaskStore
	task  *store.Task
	state CommandState
}

func NewRemoveCommand(st *store.TaskStore, task *store.Task) *RemoveCommand {
	return &RemoveCommand{store: st, task: task, state: CommandCreated}
}

func (c *RemoveCommand) Execute() error {
	if c.state != CommandCreated {
		return errors.Errorf("can only execute a created command, state is %s", c.state)
	}
	removed, err := c.store.Remove(c.task.ID)
	if err != nil {
		return err
	}
	c.task = removed
	c.state = CommandExecuted
	return nil
}

func (c *RemoveCommand) Undo() error {
	if c.state != CommandExecuted {
		return errors.Errorf("can only undo an executed command, state is %s", c.state)
	}
	if err := c.store.Add(c.task); err != nil {
		return err
	}
	c.state = CommandUndone
	return nil
}

func (c *RemoveCommand) State() CommandState {
	return c.state
}

func (c *RemoveCommand) Describe() string {
	return fmt.Sprintf("remove %q %s", c.task.Description, c.task.Interval())
}

// EditCommand installs a revision on execute and restores the previous
// revision on undo. The revision must carry the id of a stored task.
type EditCommand struct {
	store    *store.TaskStore
	revision *store.Task
	previous *store.Task
	state    CommandState
}

func NewEditCommand(st *store.TaskStore, revision *store.Task) *EditCommand {
	return &EditCommand{store: st, revision: revision, state: CommandCreated}
}

func (c *EditCommand) Execute() error {
	if c.state != CommandCreated {
		return errors.Errorf("can only execute a created command, state is %s", c.state)
	}
	previous, err := c.store.Update(c.revision)
	if err != nil {
		return err
	}
	c.previous = previous
	c.state = CommandExecuted
	return nil
}

func (c *EditCommand) Undo() error {
	if c.state != CommandExecuted {
		return errors.Errorf("can only undo an executed command, state is %s", c.state)
	}
	if _, err := c.store.Update(c.previous); err != nil {
		return err
	}
	c.state = CommandUndone
	return nil
}

func (c *EditCommand) State() CommandState {
	return c.state
}

func (c *EditCommand) Describe() string {
	return fmt.Sprintf("edit %q %s", c.revision.Description, c.revision.Interval())
}

// CommandLog is the linear undo history: newest command on top, no redo
// and no branching. It is not safe for concurrent use on its own; the
// scheduler serializes access.
type CommandLog struct {
	stack []Command
}

func NewCommandLog() *CommandLog {
	return &CommandLog{}
}

// Push records an executed command as the newest undo candidate.
func (l *CommandLog) Push(cmd Command) {
	l.stack = append(l.stack, cmd)
}

// Len returns the number of undoable commands.
func (l *CommandLog) Len() int {
	return len(l.stack)
}

// PopAndUndo pops the most recent command and undoes it. On an empty
// log it returns (nil, nil): undoing nothing is not an error. The
// popped command is returned even when its undo fails.
func (l *CommandLog) PopAndUndo() (Command, error) {
	if len(l.stack) == 0 {
		return nil, nil
	}
	cmd := l.stack[len(l.stack)-1]
	l.stack = l.stack[:len(l.stack)-1]

	if err := cmd.Undo(); err != nil {
		return cmd, err
	}
	return cmd, nil
}
