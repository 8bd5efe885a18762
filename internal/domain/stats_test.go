package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCalculateStats(t *testing.T) {
	tests := []struct {
		name       string
		capacity   int
		registered int
		want       EventStats
	}{
		{
			name:       "empty event",
			capacity:   10,
			registered: 0,
			want:       EventStats{TotalRegistrations: 0, RemainingCapacity: 10, PercentageUsed: 0},
		},
		{
			name:       "full event",
			capacity:   10,
			registered: 10,
			want:       EventStats{TotalRegistrations: 10, RemainingCapacity: 0, PercentageUsed: 100},
		},
		{
			name:       "third used rounds down",
			capacity:   3,
			registered: 1,
			want:       EventStats{TotalRegistrations: 1, RemainingCapacity: 2, PercentageUsed: 33},
		},
		{
			name:       "two thirds rounds up",
			capacity:   3,
			registered: 2,
			want:       EventStats{TotalRegistrations: 2, RemainingCapacity: 1, PercentageUsed: 67},
		},
		{
			name:       "half rounds away from zero",
			capacity:   8,
			registered: 1,
			want:       EventStats{TotalRegistrations: 1, RemainingCapacity: 7, PercentageUsed: 13},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateStats(tt.capacity, tt.registered)
			require.NoError(t, err)
			require.Equal(t, &tt.want, got)
		})
	}
}

func TestCalculateStats_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		got, err := CalculateStats(capacity, 0)
		require.Error(t, err)
		require.Nil(t, got)
	}
}

func TestStateOf(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		startAt    time.Time
		capacity   int
		registered int
		want       EventState
	}{
		{"upcoming with space", now.Add(time.Hour), 10, 3, EventStateUpcoming},
		{"full", now.Add(time.Hour), 10, 10, EventStateFull},
		{"already started", now.Add(-time.Minute), 10, 3, EventStatePast},
		{"starting exactly now is past", now, 10, 3, EventStatePast},
		{"past wins over full", now.Add(-time.Minute), 10, 10, EventStatePast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &Event{ID: "e1", StartAt: tt.startAt, Capacity: tt.capacity}
			require.Equal(t, tt.want, StateOf(now, event, tt.registered))
		})
	}
}
