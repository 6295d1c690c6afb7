package schedule

import (
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"

	"github.com/vinayk028/astroplan/store"
)

// TaskFilter is a compiled CEL predicate over one task.
type TaskFilter struct {
	program cel.Program
}

// CompileFilter compiles a CEL expression with the variables
// description, priority, start and end (all strings; times use the
// zero-padded HH:MM form, so lexicographic and chronological order
// agree). The expression must evaluate to a boolean. Malformed
// expressions are ErrInvalidTask.
//
// Supported filter examples: "priority == 'HIGH'",
// "description.contains('Meeting') && start >= '09:00'".
func CompileFilter(filterExpr string) (*TaskFilter, error) {
	filterExpr = strings.TrimSpace(filterExpr)
	if filterExpr == "" {
		return nil, errors.Wrap(store.ErrInvalidTask, "filter cannot be empty")
	}

	env, err := cel.NewEnv(
		cel.Variable("description", cel.StringType),
		cel.Variable("priority", cel.StringType),
		cel.Variable("start", cel.StringType),
		cel.Variable("end", cel.StringType),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create CEL environment")
	}

	celAST, issues := env.Compile(filterExpr)
	if issues != nil && issues.Err() != nil {
		return nil, errors.Wrapf(store.ErrInvalidTask, "invalid filter expression %q: %v", filterExpr, issues.Err())
	}
	if !celAST.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.Wrapf(store.ErrInvalidTask, "filter %q must evaluate to a boolean, got %s", filterExpr, celAST.OutputType())
	}

	program, err := env.Program(celAST)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build filter program")
	}
	return &TaskFilter{program: program}, nil
}

// Matches evaluates the filter against one task.
func (f *TaskFilter) Matches(task *store.Task) (bool, error) {
	out, _, err := f.program.Eval(map[string]any{
		"description": task.Description,
		"priority":    string(task.Priority),
		"start":       task.Start.String(),
		"end":         task.End.String(),
	})
	if err != nil {
		return false, errors.Wrapf(store.ErrInvalidTask, "filter evaluation failed: %v", err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, errors.Wrapf(store.ErrInvalidTask, "filter produced %T, want bool", out.Value())
	}
	return matched, nil
}
