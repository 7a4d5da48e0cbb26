package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
database:
  type: sqlite
storage:
  type: local
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "1.0.0", cfg.Partition.Version)
	assert.Equal(t, "./output", cfg.Partition.OutputDir)
	assert.Equal(t, 0.5, cfg.Partition.DefaultBalance)
	assert.Equal(t, 4, cfg.Batch.WorkerCount)
}

func TestLoad_CustomValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
partition:
  version: "2.0.0"
  output_dir: "/tmp/out"
  default_balance: 0.2
database:
  type: postgres
  host: db.example.com
  port: 5432
  database: fmpart
  user: admin
  password: secret
storage:
  type: local
  local_path: /tmp/storage
batch:
  worker_count: 8
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", cfg.Partition.Version)
	assert.Equal(t, "/tmp/out", cfg.Partition.OutputDir)
	assert.Equal(t, 0.2, cfg.Partition.DefaultBalance)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "fmpart", cfg.Database.Database)
	assert.Equal(t, 8, cfg.Batch.WorkerCount)
}

func TestLoad_InvalidDatabaseType(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
database:
  type: mongodb
storage:
  type: local
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	_, err = Load(configFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestLoad_COSWithCredentials(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
database:
  type: sqlite
storage:
  type: cos
  bucket: test-bucket
  region: ap-guangzhou
  secret_id: test-id
  secret_key: test-key
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "cos", cfg.Storage.Type)
	assert.Equal(t, "test-bucket", cfg.Storage.Bucket)
}

func TestValidate_EmptyHost(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Type: "postgres",
			Host: "",
		},
		Storage:  StorageConfig{Type: "local"},
		Batch:    BatchConfig{WorkerCount: 1},
		Partition: PartitionConfig{DefaultBalance: 0.5},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database host is required")
}

func TestValidate_InvalidWorkerCount(t *testing.T) {
	cfg := &Config{
		Database:  DatabaseConfig{Type: "sqlite"},
		Storage:   StorageConfig{Type: "local"},
		Partition: PartitionConfig{DefaultBalance: 0.5},
		Batch:     BatchConfig{WorkerCount: 0},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "worker count must be at least 1")
}

func TestValidate_InvalidBalance(t *testing.T) {
	cfg := &Config{
		Database:  DatabaseConfig{Type: "sqlite"},
		Storage:   StorageConfig{Type: "local"},
		Partition: PartitionConfig{DefaultBalance: 1.5},
		Batch:     BatchConfig{WorkerCount: 1},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "default_balance")
}

func TestRunOutputPath(t *testing.T) {
	cfg := &Config{
		Partition: PartitionConfig{OutputDir: "/tmp/out"},
	}

	assert.Equal(t, "/tmp/out/run-123.out", cfg.RunOutputPath("run-123"))
}

func TestEnsureOutputDir(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "partition", "output")

	cfg := &Config{
		Partition: PartitionConfig{OutputDir: outDir},
	}

	err := cfg.EnsureOutputDir()
	require.NoError(t, err)

	_, err = os.Stat(outDir)
	assert.NoError(t, err)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadFromReader(t *testing.T) {
	content := []byte(`
database:
  type: mysql
  host: mysql.local
storage:
  type: local
`)
	cfg, err := LoadFromReader("yaml", content)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "mysql.local", cfg.Database.Host)
}
