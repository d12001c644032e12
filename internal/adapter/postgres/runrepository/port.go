// Package runrepository stores the run history in PostgreSQL
package runrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/ports/secondary"
	"gitlab.com/pagetest.net/internal/domain"
)

var _ secondary.RunRepository = (*RunRepository)(nil)

// RunRepository implements the RunRepository interface with PostgreSQL
type RunRepository struct {
	db     *sqlx.DB
	table  string
	logger primary.Logger
}

type runRow struct {
	ID           uuid.UUID      `db:"id"`
	ArtifactKey  string         `db:"artifact_key"`
	ArtifactPath string         `db:"artifact_path"`
	Success      bool           `db:"success"`
	ExitCode     int            `db:"exit_code"`
	Error        sql.NullString `db:"error"`
	Report       []byte         `db:"report"`
	RawStdout    string         `db:"raw_stdout"`
	RawStderr    string         `db:"raw_stderr"`
	StartedAt    time.Time      `db:"started_at"`
	DurationNs   int64          `db:"duration_ns"`
}

const runColumns = `id, artifact_key, artifact_path, success, exit_code, error, report, raw_stdout, raw_stderr, started_at, duration_ns`

// NewRunRepository creates a new PostgreSQL run repository in schema
func NewRunRepository(db *sqlx.DB, schema string, logger primary.Logger) *RunRepository {
	return &RunRepository{
		db:     db,
		table:  fmt.Sprintf("%s.runs", schema),
		logger: logger,
	}
}

// EnsureTableExists creates the runs table and its lookup index
func (r *RunRepository) EnsureTableExists(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id            UUID PRIMARY KEY,
			artifact_key  TEXT NOT NULL,
			artifact_path TEXT NOT NULL,
			success       BOOLEAN NOT NULL,
			exit_code     INTEGER NOT NULL,
			error         TEXT,
			report        JSONB,
			raw_stdout    TEXT NOT NULL,
			raw_stderr    TEXT NOT NULL,
			started_at    TIMESTAMPTZ NOT NULL,
			duration_ns   BIGINT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS runs_artifact_key_started_at_idx ON %[1]s (artifact_key, started_at DESC);
	`, r.table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Error("Failed to create runs table", "error", err)
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

// SaveRun inserts a finished run
func (r *RunRepository) SaveRun(ctx context.Context, run *domain.RunRecord) error {
	var report []byte
	if run.Outcome.Report != nil {
		var err error
		if report, err = json.Marshal(run.Outcome.Report); err != nil {
			r.logger.Error("Failed to marshal run report", "runId", run.ID, "error", err)
			return fmt.Errorf("failed to marshal run report: %w", err)
		}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.table, runColumns)

	_, err := r.db.ExecContext(
		ctx,
		query,
		run.ID,
		run.ArtifactKey,
		run.ArtifactPath,
		run.Outcome.Success,
		run.Outcome.ExitCode,
		sql.NullString{String: run.Outcome.Error, Valid: run.Outcome.Error != ""},
		report,
		run.Outcome.RawStdout,
		run.Outcome.RawStderr,
		run.StartedAt,
		int64(run.Duration),
	)
	if err != nil {
		r.logger.Error("Failed to save run", "runId", run.ID, "error", err)
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID
func (r *RunRepository) GetRun(ctx context.Context, id uuid.UUID) (*domain.RunRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, runColumns, r.table)

	var row runRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get run", "runId", id, "error", err)
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return row.toDomain(), nil
}

// ListRuns returns the latest runs of an artifact
func (r *RunRepository) ListRuns(ctx context.Context, artifactKey string, limit int) ([]*domain.RunRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE artifact_key = $1
		ORDER BY started_at DESC
		LIMIT $2
	`, runColumns, r.table)

	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, query, artifactKey, limit); err != nil {
		r.logger.Error("Failed to list runs", "artifactKey", artifactKey, "error", err)
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*domain.RunRecord, 0, len(rows))
	for i := range rows {
		runs = append(runs, rows[i].toDomain())
	}
	return runs, nil
}

// toDomain drops a stored report that no longer decodes instead of failing the read.
func (row *runRow) toDomain() *domain.RunRecord {
	run := &domain.RunRecord{
		ID:           row.ID,
		ArtifactKey:  row.ArtifactKey,
		ArtifactPath: row.ArtifactPath,
		StartedAt:    row.StartedAt,
		Duration:     time.Duration(row.DurationNs),
		Outcome: domain.ExecutionOutcome{
			Success:   row.Success,
			ExitCode:  row.ExitCode,
			Error:     row.Error.String,
			RawStdout: row.RawStdout,
			RawStderr: row.RawStderr,
		},
	}
	if len(row.Report) > 0 {
		var report domain.Report
		if err := json.Unmarshal(row.Report, &report); err == nil {
			run.Outcome.Report = &report
		}
	}
	return run
}
