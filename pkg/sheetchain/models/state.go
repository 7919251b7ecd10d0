package models

// RunState is the terminal state of a chain run.
type RunState string

const (
	// StatePending means the run has not started.
	StatePending RunState = "pending"
	// StateRunning means a step is in flight.
	StateRunning RunState = "running"
	// StateCompleted means every step succeeded.
	StateCompleted RunState = "completed"
	// StateFailed means a step failed and the remaining steps were not run.
	StateFailed RunState = "failed"
	// StateCancelled means the run was cancelled before a step started.
	StateCancelled RunState = "cancelled"
)
