package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationLifecycle(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{ApplicationStatusApplied, ApplicationStatusAccepted, true},
		{ApplicationStatusApplied, ApplicationStatusRejected, true},
		{ApplicationStatusApplied, ApplicationStatusComplete, false},
		{ApplicationStatusAccepted, ApplicationStatusComplete, true},
		{ApplicationStatusAccepted, ApplicationStatusRejected, true},
		{ApplicationStatusAccepted, ApplicationStatusApplied, false},
		{ApplicationStatusComplete, ApplicationStatusAccepted, false},
		{ApplicationStatusComplete, ApplicationStatusRejected, false},
		{ApplicationStatusRejected, ApplicationStatusAccepted, false},
		{ApplicationStatusRejected, ApplicationStatusComplete, false},
		{"unknown", ApplicationStatusAccepted, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.allowed, CanTransitionApplication(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, IsTerminalApplicationStatus(ApplicationStatusComplete))
	assert.True(t, IsTerminalApplicationStatus(ApplicationStatusRejected))
	assert.False(t, IsTerminalApplicationStatus(ApplicationStatusApplied))
	assert.False(t, IsTerminalApplicationStatus(ApplicationStatusAccepted))
	assert.False(t, IsTerminalApplicationStatus("unknown"))
}

func TestIsValidApplicationStatus(t *testing.T) {
	for _, status := range []string{ApplicationStatusApplied, ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusComplete} {
		assert.True(t, IsValidApplicationStatus(status))
	}
	assert.False(t, IsValidApplicationStatus("pending"))
}
