package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRunRepository_SaveRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRunRepository(db)

	t.Run("SaveRun_Success", func(t *testing.T) {
		run := &Run{
			RunUUID:        "run-1",
			InputFile:      "circuit.net",
			BalanceFactor:  0.5,
			InitialCutSize: 10,
			FinalCutSize:   4,
			PartSizeA:      50,
			PartSizeB:      50,
			Passes:         3,
			ElapsedMS:      120,
			Version:        "1.0.0",
		}

		mock.ExpectExec("INSERT INTO partition_runs").
			WithArgs(run.RunUUID, run.InputFile, run.BalanceFactor, run.InitialCutSize, run.FinalCutSize,
				run.PartSizeA, run.PartSizeB, run.Passes, run.ElapsedMS, run.Version).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.SaveRun(context.Background(), run)
		require.NoError(t, err)
	})
}

func TestPostgresRunRepository_GetRunByUUID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRunRepository(db)

	t.Run("GetRun_Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"run_uuid", "input_file", "balance_factor", "initial_cut_size", "final_cut_size",
			"part_size_a", "part_size_b", "passes", "elapsed_ms", "version", "create_time",
		}).AddRow("run-1", "circuit.net", 0.5, 10, 4, 50, 50, 3, int64(120), "1.0.0", time.Now())

		mock.ExpectQuery("SELECT run_uuid, input_file").WithArgs("run-1").WillReturnRows(rows)

		run, err := repo.GetRunByUUID(context.Background(), "run-1")
		require.NoError(t, err)
		assert.Equal(t, "run-1", run.RunUUID)
		assert.Equal(t, 4, run.FinalCutSize)
	})

	t.Run("GetRun_NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT run_uuid, input_file").WithArgs("missing").WillReturnError(sql.ErrNoRows)

		run, err := repo.GetRunByUUID(context.Background(), "missing")
		assert.Error(t, err)
		assert.Nil(t, run)
		assert.Contains(t, err.Error(), "run not found")
	})
}

func TestPostgresRunRepository_ListRecentRuns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRunRepository(db)

	t.Run("ListRuns_Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"run_uuid", "input_file", "balance_factor", "initial_cut_size", "final_cut_size",
			"part_size_a", "part_size_b", "passes", "elapsed_ms", "version", "create_time",
		}).
			AddRow("run-2", "b.net", 0.5, 5, 2, 10, 10, 2, int64(80), "1.0.0", time.Now()).
			AddRow("run-1", "a.net", 0.5, 10, 4, 50, 50, 3, int64(120), "1.0.0", time.Now())

		mock.ExpectQuery("SELECT run_uuid, input_file").WithArgs(10).WillReturnRows(rows)

		runs, err := repo.ListRecentRuns(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "run-2", runs[0].RunUUID)
	})

	t.Run("ListRuns_Empty", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"run_uuid", "input_file", "balance_factor", "initial_cut_size", "final_cut_size",
			"part_size_a", "part_size_b", "passes", "elapsed_ms", "version", "create_time",
		})

		mock.ExpectQuery("SELECT run_uuid, input_file").WithArgs(10).WillReturnRows(rows)

		runs, err := repo.ListRecentRuns(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}
