// Package config loads the JSON/YAML configuration driving a training
// run: which model architecture to build, where its data lives, and
// which loss, metric and optimizer to train it with.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the top-level configuration for a training run.
type AppConfig struct {
	Model      ModelConfig    `json:"model" yaml:"model"`
	Data       DataConfig     `json:"data" yaml:"data"`
	Training   TrainingConfig `json:"training" yaml:"training"`
	Checkpoint string         `json:"checkpoint" yaml:"checkpoint"`
}

// ModelConfig describes the Sequential architecture to build: an input
// layer, a chain of hidden layer widths, and an output layer.
type ModelConfig struct {
	Name        string `json:"name" yaml:"name"`
	InputSize   int    `json:"input_size" yaml:"input_size"`
	OutputSize  int    `json:"output_size" yaml:"output_size"`
	HiddenSizes []int  `json:"hidden_sizes" yaml:"hidden_sizes"`
	Bias        bool   `json:"bias" yaml:"bias"`
}

// DataConfig describes where training data comes from and how it is fed
// to the model.
type DataConfig struct {
	Path      string `json:"path" yaml:"path"`
	BatchSize int    `json:"batch_size" yaml:"batch_size"`
	Shuffle   bool   `json:"shuffle" yaml:"shuffle"`
	DropLast  bool   `json:"drop_last" yaml:"drop_last"`
	Seed      int64  `json:"seed" yaml:"seed"`
}

// TrainingConfig describes the optimization loop: how long to run it,
// at what rate, against which loss and tracked by which metric.
type TrainingConfig struct {
	LR        float64 `json:"lr" yaml:"lr"`
	Epochs    int     `json:"epochs" yaml:"epochs"`
	Batch     int     `json:"batch" yaml:"batch"`
	Seed      int64   `json:"seed" yaml:"seed"`
	Optimizer string  `json:"optimizer" yaml:"optimizer"` // "sgd" | "momentum" | "adam"
	Loss      string  `json:"loss" yaml:"loss"`           // "mse" | "mae" | "bce"
	Metric    string  `json:"metric" yaml:"metric"`       // "mae"
}

// DefaultAppConfig returns a configuration with reasonable defaults for
// the XOR-style regression scenario this module ships a driver for.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Model: ModelConfig{
			Name:        "mlp",
			InputSize:   2,
			OutputSize:  1,
			HiddenSizes: []int{8},
			Bias:        true,
		},
		Data: DataConfig{
			Path:      "./data",
			BatchSize: 4,
			Shuffle:   true,
			DropLast:  false,
			Seed:      42,
		},
		Training: TrainingConfig{
			LR:        0.1,
			Epochs:    500,
			Batch:     4,
			Seed:      42,
			Optimizer: "adam",
			Loss:      "mse",
			Metric:    "mae",
		},
		Checkpoint: "./checkpoints/model.json",
	}
}

// LoadConfig reads path and unmarshals it into out. JSON (.json) and
// YAML (.yaml, .yml) are supported by extension; an unrecognized
// extension tries JSON first, then YAML.
func LoadConfig(path string, out interface{}) error {
	if path == "" {
		return errors.New("config: empty path")
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(bs, out); err != nil {
			return fmt.Errorf("config: json unmarshal: %w", err)
		}
		return nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(bs, out); err != nil {
			return fmt.Errorf("config: yaml unmarshal: %w", err)
		}
		return nil
	default:
		if err := json.Unmarshal(bs, out); err == nil {
			return nil
		}
		if err := yaml.Unmarshal(bs, out); err == nil {
			return nil
		}
		return errors.New("config: unsupported format and parsing failed (json/yaml tried)")
	}
}

// LoadAppConfig builds an AppConfig starting from DefaultAppConfig,
// overlaying path's contents if path is non-empty, then applying
// environment variable overrides and validating the result.
func LoadAppConfig(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()

	if path != "" {
		if err := LoadConfig(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for internally consistent values,
// filling in a couple of cross-field fallbacks along the way.
func (c *AppConfig) Validate() error {
	if c.Model.InputSize <= 0 {
		return errors.New("model.input_size must be > 0")
	}
	if c.Model.OutputSize <= 0 {
		return errors.New("model.output_size must be > 0")
	}
	if c.Data.BatchSize <= 0 {
		if c.Training.Batch > 0 {
			c.Data.BatchSize = c.Training.Batch
		} else {
			return errors.New("data.batch_size must be > 0")
		}
	}
	if c.Training.Epochs <= 0 {
		return errors.New("training.epochs must be > 0")
	}
	if c.Training.LR <= 0 {
		return errors.New("training.lr must be > 0")
	}

	switch c.Training.Optimizer {
	case "sgd", "momentum", "adam":
	default:
		return fmt.Errorf("unsupported training.optimizer: %s", c.Training.Optimizer)
	}
	switch c.Training.Loss {
	case "mse", "mae", "bce":
	default:
		return fmt.Errorf("unsupported training.loss: %s", c.Training.Loss)
	}
	switch c.Training.Metric {
	case "mae":
	default:
		return fmt.Errorf("unsupported training.metric: %s", c.Training.Metric)
	}

	if c.Training.Seed == 0 && c.Data.Seed != 0 {
		c.Training.Seed = c.Data.Seed
	}
	return nil
}

// applyEnvOverrides lets a handful of GNN_* environment variables
// override fields already loaded from defaults or a config file.
func applyEnvOverrides(c *AppConfig) {
	if v := os.Getenv("GNN_CHECKPOINT"); v != "" {
		c.Checkpoint = v
	}
	if v := os.Getenv("GNN_DATA_PATH"); v != "" {
		c.Data.Path = v
	}
	if v := os.Getenv("GNN_LR"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Training.LR = f
		}
	}
	if v := os.Getenv("GNN_EPOCHS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.Training.Epochs = i
		}
	}
	if v := os.Getenv("GNN_BATCH"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.Training.Batch = i
			c.Data.BatchSize = i
		}
	}
	if v := os.Getenv("GNN_SEED"); v != "" {
		if s, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Training.Seed = s
			c.Data.Seed = s
		}
	}
	if v := os.Getenv("GNN_OPTIMIZER"); v != "" {
		c.Training.Optimizer = v
	}
	if v := os.Getenv("GNN_LOSS"); v != "" {
		c.Training.Loss = v
	}
	if v := os.Getenv("GNN_METRIC"); v != "" {
		c.Training.Metric = v
	}
}
