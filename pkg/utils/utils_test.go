// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceString(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected string
	}{
		{
			name:     "returns first non-empty string",
			values:   []string{"", "", "nats://localhost:4222"},
			expected: "nats://localhost:4222",
		},
		{
			name:     "returns first value when non-empty",
			values:   []string{"first", "second"},
			expected: "first",
		},
		{
			name:     "returns empty string when all empty",
			values:   []string{"", ""},
			expected: "",
		},
		{
			name:     "returns empty string when no arguments",
			values:   []string{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoalesceString(tt.values...))
		})
	}
}

func TestTimePtr(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ptr := TimePtr(now)

	assert.NotNil(t, ptr)
	assert.Equal(t, now, *ptr)
}
