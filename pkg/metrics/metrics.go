// Package metrics tracks training progress across batches within an
// epoch.
package metrics

import (
	"errors"
	"math"
	"sync"
)

// ErrLengthMismatch is returned when predictions and targets passed to
// Update don't have the same length.
var ErrLengthMismatch = errors.New("metrics: predictions and targets must have the same length")

// Metric accumulates per-batch observations into a running value.
type Metric interface {
	Update(preds, targets []float64) error
	Value() float64
	Reset()
	Name() string
}

// MAE tracks mean absolute error across every Update call since the
// last Reset, not just the most recent batch — the running sum and
// count let it report an epoch-level average rather than a single
// batch's.
type MAE struct {
	mu     sync.Mutex
	sumAbs float64
	count  int
}

// NewMAE builds an empty MAE tracker.
func NewMAE() *MAE {
	return &MAE{}
}

func (m *MAE) Update(preds, targets []float64) error {
	if len(preds) != len(targets) {
		return ErrLengthMismatch
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range preds {
		m.sumAbs += math.Abs(preds[i] - targets[i])
	}
	m.count += len(preds)
	return nil
}

// Value returns the running mean absolute error, or 0 if no batch has
// been observed yet.
func (m *MAE) Value() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.count == 0 {
		return 0
	}
	return m.sumAbs / float64(m.count)
}

func (m *MAE) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sumAbs = 0
	m.count = 0
}

func (m *MAE) Name() string { return "mae" }
