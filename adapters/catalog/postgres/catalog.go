// Package postgres implements ports.RunCatalog over sqlx + lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"time"

	"eamlab/domain/core"
	"eamlab/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Catalog implements ports.RunCatalog for PostgreSQL.
type Catalog struct {
	db *sqlx.DB
}

// Open connects to dsn and returns a ready Catalog.
func Open(dsn string) (*Catalog, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, core.Wrap(core.KindCatalogUnavailable, "connecting to run catalog", err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying connection pool.
func (c *Catalog) Close() error { return c.db.Close() }

type catalogRow struct {
	RunID       string       `db:"run_id"`
	ConfigHash  string       `db:"config_hash"`
	OutputDir   string       `db:"output_dir"`
	Model       string       `db:"model"`
	Backend     string       `db:"backend"`
	StartedAt   time.Time    `db:"started_at"`
	CompletedAt sql.NullTime `db:"completed_at"`
	Status      string       `db:"status"`
	Error       string       `db:"error"`
}

// Record upserts entry by run_id.
func (c *Catalog) Record(ctx context.Context, entry ports.RunCatalogEntry) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO run_catalog (run_id, config_hash, output_dir, model, backend, started_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id) DO UPDATE SET
			config_hash = EXCLUDED.config_hash,
			output_dir  = EXCLUDED.output_dir,
			model       = EXCLUDED.model,
			backend     = EXCLUDED.backend,
			started_at  = EXCLUDED.started_at,
			status      = EXCLUDED.status
	`, string(entry.RunID), string(entry.ConfigHash), entry.OutputDir, entry.Model, entry.Backend, entry.StartedAt, string(entry.Status))
	if err != nil {
		return core.Wrap(core.KindCatalogUnavailable, "recording run catalog entry", err)
	}
	return nil
}

// Complete updates a run's terminal fields.
func (c *Catalog) Complete(ctx context.Context, runID core.RunID, status ports.RunStatus, errMsg string) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE run_catalog
		SET status = $2, completed_at = NOW(), error = $3
		WHERE run_id = $1
	`, string(runID), string(status), errMsg)
	if err != nil {
		return core.Wrap(core.KindCatalogUnavailable, "completing run catalog entry", err)
	}
	return nil
}

// List returns recent run catalog entries for operator inspection.
func (c *Catalog) List(ctx context.Context, limit, offset int) ([]ports.RunCatalogEntry, error) {
	var rows []catalogRow
	err := c.db.SelectContext(ctx, &rows, `
		SELECT run_id, config_hash, output_dir, model, backend, started_at, completed_at, status, error
		FROM run_catalog
		ORDER BY started_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, core.Wrap(core.KindCatalogUnavailable, "listing run catalog", err)
	}

	out := make([]ports.RunCatalogEntry, len(rows))
	for i, r := range rows {
		entry := ports.RunCatalogEntry{
			RunID:      core.RunID(r.RunID),
			ConfigHash: core.Hash(r.ConfigHash),
			OutputDir:  r.OutputDir,
			Model:      r.Model,
			Backend:    r.Backend,
			StartedAt:  r.StartedAt,
			Status:     ports.RunStatus(r.Status),
			Error:      r.Error,
		}
		if r.CompletedAt.Valid {
			t := r.CompletedAt.Time
			entry.CompletedAt = &t
		}
		out[i] = entry
	}
	return out, nil
}

// Schema is the DDL owned by this adapter. Open does not apply it: the
// run_catalog table must already exist before Record, Complete or List
// is called.
const Schema = `
CREATE TABLE IF NOT EXISTS run_catalog (
	run_id       TEXT PRIMARY KEY,
	config_hash  TEXT NOT NULL,
	output_dir   TEXT NOT NULL,
	model        TEXT NOT NULL,
	backend      TEXT NOT NULL,
	started_at   TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ,
	status       TEXT NOT NULL,
	error        TEXT NOT NULL DEFAULT ''
)`

var _ ports.RunCatalog = (*Catalog)(nil)
