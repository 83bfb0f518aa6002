package state

import (
	"context"
)

// EngineStats is a point-in-time view of the simulation loop.
type EngineStats struct {
	Timestamp int64  `json:"timestamp"`
	Ticks     uint64 `json:"ticks"`
	Accessor  string `json:"accessor"`

	QueueDepth     int   `json:"queue_depth"`
	Enqueued       int64 `json:"enqueued"`
	ActivePastes   int   `json:"active_pastes"`
	PendingTasks   int   `json:"pending_tasks"`
	LastChecks     int   `json:"last_checks"`
	LastWrites     int   `json:"last_writes"`
	LastFailures   int   `json:"last_failures"`
	LastConsidered int   `json:"last_considered"`

	TotalChecks     int64 `json:"total_checks"`
	TotalWrites     int64 `json:"total_writes"`
	TotalFailures   int64 `json:"total_failures"`
	TotalConsidered int64 `json:"total_considered"`
	PastesFinished  int64 `json:"pastes_finished"`
}

// StateManager provides shared access to the engine stats.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the latest stats.
	Get(ctx context.Context) (EngineStats, error)
	// Set replaces the latest stats.
	Set(ctx context.Context, stats EngineStats) error
}
