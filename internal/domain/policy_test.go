package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsCancellable(t *testing.T) {
	now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{name: "well in advance", start: now.Add(48 * time.Hour), want: true},
		{name: "just over the window", start: now.Add(12*time.Hour + time.Minute), want: true},
		{name: "exactly 12h is too late", start: now.Add(12 * time.Hour), want: false},
		{name: "just under the window", start: now.Add(11*time.Hour + 59*time.Minute), want: false},
		{name: "already started", start: now.Add(-time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCancellable(tt.start, now))
		})
	}
}
