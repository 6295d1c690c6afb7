package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayk028/astroplan/store"
)

func TestCompileFilter_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"malformed", "priority =="},
		{"unbalanced parens", "(priority == 'HIGH'"},
		{"unknown variable", "owner == 'crew'"},
		{"non boolean string", "priority"},
		{"non boolean arithmetic", "1 + 2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CompileFilter(tc.expr)
			require.Error(t, err)
			assert.ErrorIs(t, err, store.ErrInvalidTask)
		})
	}
}

func TestCompileFilter_NonBooleanMessage(t *testing.T) {
	_, err := CompileFilter("description")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boolean")
}

func TestTaskFilter_Matches(t *testing.T) {
	exercise := mustTask(t, "Morning Exercise", "07:00", "08:00", "HIGH")
	meeting := mustTask(t, "Team Meeting", "09:00", "10:00", "MEDIUM")

	testCases := []struct {
		name string
		expr string
		task *store.Task
		want bool
	}{
		{"priority match", "priority == 'HIGH'", exercise, true},
		{"priority mismatch", "priority == 'HIGH'", meeting, false},
		{"priority set", "priority in ['HIGH', 'MEDIUM']", meeting, true},
		{"contains match", "description.contains('Meeting')", meeting, true},
		{"contains mismatch", "description.contains('Meeting')", exercise, false},
		{"prefix", "description.startsWith('Morning')", exercise, true},
		{"start comparison early", "start >= '09:00'", exercise, false},
		{"start comparison late", "start >= '09:00'", meeting, true},
		{"end comparison", "end <= '08:00'", exercise, true},
		{"compound", "priority == 'HIGH' && start < '08:00'", exercise, true},
		{"compound mismatch", "priority == 'HIGH' && start < '08:00'", meeting, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filter, err := CompileFilter(tc.expr)
			require.NoError(t, err)

			got, err := filter.Matches(tc.task)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTaskFilter_TimesCompareLexicographically(t *testing.T) {
	// Zero-padded HH:MM keeps string order aligned with clock order,
	// including across the 09:00/10:00 digit rollover.
	late := mustTask(t, "Late Slot", "10:00", "11:00", "LOW")
	filter, err := CompileFilter("start > '09:30'")
	require.NoError(t, err)

	got, err := filter.Matches(late)
	require.NoError(t, err)
	assert.True(t, got)
}
