package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db      *gorm.DB
	version string
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB, version string) *GormRunRepository {
	return &GormRunRepository{db: db, version: version}
}

// SaveRun persists the outcome of one partitioning session.
func (r *GormRunRepository) SaveRun(ctx context.Context, run *Run) error {
	record := &PartitionRunRecord{
		RunUUID:        run.RunUUID,
		InputFile:      run.InputFile,
		BalanceFactor:  run.BalanceFactor,
		InitialCutSize: run.InitialCutSize,
		FinalCutSize:   run.FinalCutSize,
		PartSizeA:      run.PartSizeA,
		PartSizeB:      run.PartSizeB,
		Passes:         run.Passes,
		ElapsedMS:      run.ElapsedMS,
		Version:        r.version,
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save partition run: %w", err)
	}

	return nil
}

// GetRunByUUID retrieves a run by its UUID.
func (r *GormRunRepository) GetRunByUUID(ctx context.Context, runUUID string) (*Run, error) {
	var record PartitionRunRecord

	err := r.db.WithContext(ctx).Where("run_uuid = ?", runUUID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run not found: %s", runUUID)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return record.ToRun(), nil
}

// ListRecentRuns retrieves the most recent runs, newest first.
func (r *GormRunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	var records []PartitionRunRecord

	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}

	runs := make([]*Run, len(records))
	for i, rec := range records {
		runs[i] = rec.ToRun()
	}

	return runs, nil
}
