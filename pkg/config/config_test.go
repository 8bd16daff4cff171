package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := `
model:
  name: "mlp-test"
  input_size: 16
  output_size: 2
  hidden_sizes: [8]
  bias: true
data:
  path: "./data/test"
  batch_size: 8
  shuffle: false
  drop_last: true
  seed: 7
training:
  lr: 0.05
  epochs: 3
  batch: 8
  seed: 7
  optimizer: "sgd"
  loss: "mse"
  metric: "mae"
checkpoint: "./ckpt/test.json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mlp-test", cfg.Model.Name)
	assert.Equal(t, 8, cfg.Data.BatchSize)
	assert.True(t, cfg.Data.DropLast)
	assert.Equal(t, int64(7), cfg.Data.Seed)
	assert.Equal(t, 0.05, cfg.Training.LR)
	assert.Equal(t, "sgd", cfg.Training.Optimizer)
	assert.Equal(t, "mse", cfg.Training.Loss)
	assert.Equal(t, "./ckpt/test.json", cfg.Checkpoint)
}

func TestLoadAppConfigDefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("GNN_LR", "0.123")
	t.Setenv("GNN_EPOCHS", "2")
	t.Setenv("GNN_BATCH", "16")
	t.Setenv("GNN_OPTIMIZER", "momentum")
	t.Setenv("GNN_SEED", "99")

	cfg, err := LoadAppConfig("")
	require.NoError(t, err)

	assert.Equal(t, 0.123, cfg.Training.LR)
	assert.Equal(t, 2, cfg.Training.Epochs)
	assert.Equal(t, 16, cfg.Data.BatchSize)
	assert.Equal(t, "momentum", cfg.Training.Optimizer)
	assert.Equal(t, int64(99), cfg.Training.Seed)
}

func TestValidateRejectsUnsupportedLoss(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Training.Loss = "hinge"
	assert.Error(t, cfg.Validate())
}

func TestValidateFillsBatchSizeFromTrainingBatch(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Data.BatchSize = 0
	cfg.Training.Batch = 12
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 12, cfg.Data.BatchSize)
}
