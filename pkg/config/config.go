// Package config provides configuration management for the fmpart service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Partition PartitionConfig `mapstructure:"partition"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Log       LogConfig       `mapstructure:"log"`
}

// PartitionConfig holds partitioning-related configuration.
type PartitionConfig struct {
	Version             string  `mapstructure:"version"`
	OutputDir           string  `mapstructure:"output_dir"`
	DefaultBalance      float64 `mapstructure:"default_balance"`
	MaxPasses           int     `mapstructure:"max_passes"`
	PersistRunHistory   bool    `mapstructure:"persist_run_history"`
	ExportResultToStore bool    `mapstructure:"export_result_to_store"`
}

// DatabaseConfig holds database connection configuration for run-history
// persistence (internal/repository).
type DatabaseConfig struct {
	Type     string `mapstructure:"type"` // postgres, mysql or sqlite; repository.NewGormDB connects only to postgres or mysql
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	MaxConns int    `mapstructure:"max_conns"`
}

// StorageConfig holds object storage configuration for result export
// (internal/storage).
type StorageConfig struct {
	Type      string `mapstructure:"type"` // cos or local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`     // e.g., "myqcloud.com"
	Scheme    string `mapstructure:"scheme"`     // e.g., "https" or "http"
	LocalPath string `mapstructure:"local_path"` // for local storage
}

// BatchConfig holds configuration for the batch CLI's worker pool
// (cmd/fmpart-batch, pkg/parallel).
type BatchConfig struct {
	WorkerCount  int `mapstructure:"worker_count"`
	QueueDepth   int `mapstructure:"queue_depth"`
	BatchSizeMax int `mapstructure:"batch_size_max"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"` // json or text
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Determine config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/fmpart")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Check if it's a "file not found" error (either viper's type or os error)
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, use defaults
			fmt.Println("Config file not found, using defaults")
		} else if os.IsNotExist(err) {
			// File specified but doesn't exist, use defaults
			fmt.Printf("Config file %s not found, using defaults\n", configPath)
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow environment variables to override config
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from an io.Reader (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Partition defaults
	v.SetDefault("partition.version", "1.0.0")
	v.SetDefault("partition.output_dir", "./output")
	v.SetDefault("partition.default_balance", 0.5)
	v.SetDefault("partition.max_passes", 0) // 0 = unbounded, stop on non-positive gain

	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.max_conns", 10)

	// Storage defaults
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./storage")

	// Batch defaults
	v.SetDefault("batch.worker_count", 4)
	v.SetDefault("batch.queue_depth", 64)
	v.SetDefault("batch.batch_size_max", 1000)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_path", "./logs")
	v.SetDefault("log.format", "text")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
	if c.Database.Type != "sqlite" && c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Partition.DefaultBalance <= 0 || c.Partition.DefaultBalance >= 1 {
		return fmt.Errorf("partition.default_balance must be in (0,1)")
	}

	if c.Batch.WorkerCount < 1 {
		return fmt.Errorf("batch worker count must be at least 1")
	}

	// Storage config validation is delegated to the storage package.

	return nil
}

// EnsureOutputDir creates the configured output directory if it doesn't exist.
func (c *Config) EnsureOutputDir() error {
	if c.Partition.OutputDir == "" {
		return nil
	}
	return os.MkdirAll(c.Partition.OutputDir, 0755)
}

// RunOutputPath returns the run-specific output file path for a run UUID.
func (c *Config) RunOutputPath(runUUID string) string {
	return filepath.Join(c.Partition.OutputDir, runUUID+".out")
}
