package layers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/wrenford/gnn/pkg/autograd"
	"github.com/wrenford/gnn/pkg/layers"
	"github.com/wrenford/gnn/pkg/module"
	"github.com/wrenford/gnn/pkg/tensor"
)

func col(t *testing.T, vals ...float64) autograd.Variable {
	t.Helper()
	ten, err := tensor.FromData(vals, len(vals), 1)
	require.NoError(t, err)
	return autograd.NewLeaf(ten, false)
}

func TestLinearForwardShapeAndBias(t *testing.T) {
	w, err := tensor.FromData([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	b, err := tensor.FromData([]float64{10, 20}, 2, 1)
	require.NoError(t, err)
	l, err := layers.NewLinearFromWeightsAndBias(
		autograd.NewLeaf(w, true), autograd.NewLeaf(b, true))
	require.NoError(t, err)

	x := col(t, 1, 1)
	y := l.Forward(x)
	assert.Equal(t, []float64{13, 27}, y.Data().Data)
}

func TestLinearFromWeightsAndBiasRejectsMismatch(t *testing.T) {
	w, _ := tensor.FromData([]float64{1, 2}, 1, 2)
	b, _ := tensor.FromData([]float64{1, 2}, 2, 1)
	_, err := layers.NewLinearFromWeightsAndBias(
		autograd.NewLeaf(w, true), autograd.NewLeaf(b, true))
	assert.ErrorIs(t, err, layers.ErrDimensionMismatch)
}

func TestReLUClampsNegatives(t *testing.T) {
	x := col(t, -2, 0, 3)
	y := layers.NewReLU().Forward(x)
	assert.Equal(t, []float64{0, 0, 3}, y.Data().Data)
}

func TestLeakyReLUScalesNegatives(t *testing.T) {
	x := col(t, -2, 3)
	y := layers.NewLeakyReLU(0.1).Forward(x)
	assert.InDeltaSlice(t, []float64{-0.2, 3}, y.Data().Data, 1e-12)
}

func TestThresholdReLUZeroesBelowThreshold(t *testing.T) {
	x := col(t, 0.5, 1.5, 2.5)
	y := layers.NewThresholdReLU(1.0).Forward(x)
	assert.Equal(t, []float64{0, 1.5, 2.5}, y.Data().Data)
}

func TestDropoutPassesThroughInEvalMode(t *testing.T) {
	src := rand.NewSource(1)
	d := layers.NewDropout(0.5, src)
	d.Eval()
	x := col(t, 1, 2, 3, 4)
	y := d.Forward(x)
	assert.Equal(t, x.Data().Data, y.Data().Data)
}

func TestDropoutMasksInTrainModeWithoutRescaling(t *testing.T) {
	src := rand.NewSource(1)
	d := layers.NewDropout(0.5, src)
	d.Train()
	x := col(t, 1, 1, 1, 1, 1, 1, 1, 1)
	y := d.Forward(x)
	for _, v := range y.Data().Data {
		assert.True(t, v == 0 || v == 1)
	}
}

func TestSequentialChainsLayersAndCollectsParameters(t *testing.T) {
	src := rand.NewSource(7)
	lin := layers.NewLinear(2, 3, true, 0.05, src)
	seq := module.NewSequential(lin, layers.NewReLU())
	assert.Len(t, seq.Parameters(), 2)
	x := col(t, 1, -1)
	y := seq.Forward(x)
	assert.Equal(t, []int{3, 1}, y.Data().Shape)
	for _, v := range y.Data().Data {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}
