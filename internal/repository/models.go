// Package repository provides database abstraction for the fmpart service.
package repository

import "time"

// PartitionRunRecord represents the partition_runs table: one row per
// completed partitioning session.
type PartitionRunRecord struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RunUUID        string    `gorm:"column:run_uuid;type:varchar(64);uniqueIndex"`
	InputFile      string    `gorm:"column:input_file;type:varchar(512)"`
	BalanceFactor  float64   `gorm:"column:balance_factor"`
	InitialCutSize int       `gorm:"column:initial_cut_size"`
	FinalCutSize   int       `gorm:"column:final_cut_size"`
	PartSizeA      int       `gorm:"column:part_size_a"`
	PartSizeB      int       `gorm:"column:part_size_b"`
	Passes         int       `gorm:"column:passes"`
	ElapsedMS      int64     `gorm:"column:elapsed_ms"`
	Version        string    `gorm:"column:version;type:varchar(32)"`
	CreateTime     time.Time `gorm:"column:create_time;autoCreateTime"`
}

// TableName returns the table name for PartitionRunRecord.
func (PartitionRunRecord) TableName() string {
	return "partition_runs"
}

// ToRun converts a PartitionRunRecord to a Run.
func (r *PartitionRunRecord) ToRun() *Run {
	return &Run{
		RunUUID:        r.RunUUID,
		InputFile:      r.InputFile,
		BalanceFactor:  r.BalanceFactor,
		InitialCutSize: r.InitialCutSize,
		FinalCutSize:   r.FinalCutSize,
		PartSizeA:      r.PartSizeA,
		PartSizeB:      r.PartSizeB,
		Passes:         r.Passes,
		ElapsedMS:      r.ElapsedMS,
		Version:        r.Version,
		CreateTime:     r.CreateTime,
	}
}
