package domain

import (
	"fmt"
	"math"
)

// EventStats is the occupancy snapshot for an event.
// swagger:model EventStats
type EventStats struct {
	TotalRegistrations int `json:"total_registrations"`
	RemainingCapacity  int `json:"remaining_capacity"`
	PercentageUsed     int `json:"percentage_used"`
}

// CalculateStats derives occupancy statistics from a capacity and the current
// registration count. Percentage is rounded half away from zero. Capacity is
// validated upstream to be at least 1; a non-positive capacity here means a
// caller broke that precondition, so the function errors instead of clamping.
func CalculateStats(capacity, registered int) (*EventStats, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("calculate stats: capacity must be positive, got %d", capacity)
	}
	return &EventStats{
		TotalRegistrations: registered,
		RemainingCapacity:  capacity - registered,
		PercentageUsed:     int(math.Round(float64(registered) / float64(capacity) * 100)),
	}, nil
}
