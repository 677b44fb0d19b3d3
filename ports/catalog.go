package ports

import (
	"context"
	"time"

	"eamlab/domain/core"
)

// RunStatus is a RunCatalogEntry's lifecycle state.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunCatalogEntry is the operational ledger row: what ran, when, with
// what config, independent of whether the SimulationOutput directory it
// names still exists on disk.
type RunCatalogEntry struct {
	RunID       core.RunID
	ConfigHash  core.Hash
	OutputDir   string
	Model       string
	Backend     string
	StartedAt   time.Time
	CompletedAt *time.Time
	Status      RunStatus
	Error       string
}

// RunCatalog is the run catalog store.
type RunCatalog interface {
	Record(ctx context.Context, entry RunCatalogEntry) error
	Complete(ctx context.Context, runID core.RunID, status RunStatus, errMsg string) error
	List(ctx context.Context, limit, offset int) ([]RunCatalogEntry, error)
}
