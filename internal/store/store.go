// Package store persists the history of data setup runs.
package store

import (
	"context"
	"time"
)

// RunStatus is the lifecycle state of a setup run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Outcome is what a setup step did.
type Outcome string

const (
	OutcomeCreated    Outcome = "created"    // directory tree made
	OutcomePresent    Outcome = "present"    // file already there, skipped
	OutcomeDownloaded Outcome = "downloaded" // full CSV fetched from the hub
	OutcomeSampled    Outcome = "sampled"    // demo CSV written
)

// Run is one invocation of data setup.
type Run struct {
	ID         string     `json:"id" yaml:"id"`
	Root       string     `json:"root" yaml:"root"`
	Status     RunStatus  `json:"status" yaml:"status"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at" yaml:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
}

// Step is a single recorded setup step.
type Step struct {
	ID         string    `json:"id" yaml:"id"`
	RunID      string    `json:"run_id" yaml:"run_id"`
	Name       string    `json:"name" yaml:"name"`                           // e.g. "layout_data", "full_cancer"
	Dataset    string    `json:"dataset,omitempty" yaml:"dataset,omitempty"` // empty for layout steps
	Outcome    Outcome   `json:"outcome" yaml:"outcome"`
	Path       string    `json:"path,omitempty" yaml:"path,omitempty"`
	Rows       int       `json:"rows,omitempty" yaml:"rows,omitempty"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// Store defines the persistence interface for setup history.
type Store interface {
	// Runs
	StartRun(ctx context.Context, root string) (string, error)
	FinishRun(ctx context.Context, runID string, runErr error) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Steps
	RecordStep(ctx context.Context, runID string, step Step) error
	ListSteps(ctx context.Context, runID string) ([]Step, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
