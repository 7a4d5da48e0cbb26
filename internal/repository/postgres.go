package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresRunRepository implements RunRepository with raw database/sql
// queries, for callers that do not want a GORM dependency in their path.
type PostgresRunRepository struct {
	db *sql.DB
}

// NewPostgresRunRepository creates a new PostgresRunRepository.
func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{db: db}
}

// SaveRun persists the outcome of one partitioning session.
func (r *PostgresRunRepository) SaveRun(ctx context.Context, run *Run) error {
	query := `
		INSERT INTO partition_runs
			(run_uuid, input_file, balance_factor, initial_cut_size, final_cut_size,
			 part_size_a, part_size_b, passes, elapsed_ms, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.RunUUID, run.InputFile, run.BalanceFactor, run.InitialCutSize, run.FinalCutSize,
		run.PartSizeA, run.PartSizeB, run.Passes, run.ElapsedMS, run.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save partition run: %w", err)
	}

	return nil
}

// GetRunByUUID retrieves a run by its UUID.
func (r *PostgresRunRepository) GetRunByUUID(ctx context.Context, runUUID string) (*Run, error) {
	query := `
		SELECT run_uuid, input_file, balance_factor, initial_cut_size, final_cut_size,
			   part_size_a, part_size_b, passes, elapsed_ms, version, create_time
		FROM partition_runs
		WHERE run_uuid = $1
	`

	run := &Run{}
	err := r.db.QueryRowContext(ctx, query, runUUID).Scan(
		&run.RunUUID, &run.InputFile, &run.BalanceFactor, &run.InitialCutSize, &run.FinalCutSize,
		&run.PartSizeA, &run.PartSizeB, &run.Passes, &run.ElapsedMS, &run.Version, &run.CreateTime,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found: %s", runUUID)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// ListRecentRuns retrieves the most recent runs, newest first.
func (r *PostgresRunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `
		SELECT run_uuid, input_file, balance_factor, initial_cut_size, final_cut_size,
			   part_size_a, part_size_b, passes, elapsed_ms, version, create_time
		FROM partition_runs
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(
			&run.RunUUID, &run.InputFile, &run.BalanceFactor, &run.InitialCutSize, &run.FinalCutSize,
			&run.PartSizeA, &run.PartSizeB, &run.Passes, &run.ElapsedMS, &run.Version, &run.CreateTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run rows: %w", err)
	}

	return runs, nil
}
