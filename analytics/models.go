// Package analytics defines read-only aggregation results over the
// productivity data. It never mutates state.
package analytics

import "time"

// Summary aggregates a user's activity over a time window.
type Summary struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	TasksCreated      int64 `json:"tasks_created"`
	TasksCompleted    int64 `json:"tasks_completed"`
	SessionsCompleted int64 `json:"sessions_completed"`
	FocusMinutes      int64 `json:"focus_minutes"`

	// PointsEarned is the lifetime total from the reward profile; credits
	// are not journaled per event. PointsSpent is windowed, computed from
	// purchase records.
	PointsEarned int64 `json:"points_earned"`
	PointsSpent  int64 `json:"points_spent"`

	// MoodCounts maps mood name to number of log entries in the window.
	MoodCounts map[string]int64 `json:"mood_counts"`
}
