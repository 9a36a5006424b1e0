package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"pending", StatusPending, true},
		{"  Assigned ", StatusAssigned, true},
		{"in progress", StatusInProgress, true},
		{"RESOLVED", StatusResolved, true},
		{"closed", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeStatus(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusPending, StatusResolved, true},
		{StatusAssigned, StatusInProgress, true},
		{StatusInProgress, StatusResolved, true},

		// Re-asserting the current status is allowed.
		{StatusAssigned, StatusAssigned, true},
		{StatusInProgress, StatusInProgress, true},

		// Backwards moves are not.
		{StatusAssigned, StatusPending, false},
		{StatusInProgress, StatusAssigned, false},

		// Resolved is terminal.
		{StatusResolved, StatusResolved, false},
		{StatusResolved, StatusInProgress, false},

		{"Unknown", StatusAssigned, false},
		{StatusPending, "Unknown", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
