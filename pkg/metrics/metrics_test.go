package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenford/gnn/pkg/metrics"
)

func TestMAEAccumulatesAcrossUpdates(t *testing.T) {
	m := metrics.NewMAE()
	require.NoError(t, m.Update([]float64{1, 2}, []float64{1, 0}))
	require.NoError(t, m.Update([]float64{5}, []float64{3}))

	assert.InDelta(t, (0.0+2.0+2.0)/3.0, m.Value(), 1e-12)
	assert.Equal(t, "mae", m.Name())
}

func TestMAEResetClearsState(t *testing.T) {
	m := metrics.NewMAE()
	require.NoError(t, m.Update([]float64{10}, []float64{0}))
	m.Reset()
	assert.Equal(t, 0.0, m.Value())
}

func TestMAERejectsLengthMismatch(t *testing.T) {
	m := metrics.NewMAE()
	err := m.Update([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, metrics.ErrLengthMismatch)
}
