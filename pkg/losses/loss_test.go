package losses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenford/gnn/pkg/autograd"
	"github.com/wrenford/gnn/pkg/losses"
	"github.com/wrenford/gnn/pkg/tensor"
)

func vec(t *testing.T, calcGrad bool, vals ...float64) autograd.Variable {
	t.Helper()
	ten, err := tensor.FromData(vals, len(vals))
	require.NoError(t, err)
	return autograd.NewLeaf(ten, calcGrad)
}

func TestMeanSquaredErrorForwardAndBackward(t *testing.T) {
	pred := vec(t, true, 1, 2, 3)
	target := vec(t, false, 1, 0, 3)

	loss := losses.MeanSquaredError{}
	out, err := loss.Forward(pred, target)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, out.Data().At64(0), 1e-12)

	autograd.BackwardScalar(out, false)
	g, err := pred.Grad()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 4.0 / 3.0, 0}, g.Data().Data, 1e-9)
}

func TestMeanAbsoluteError(t *testing.T) {
	pred := vec(t, false, 1, 5)
	target := vec(t, false, 3, 5)

	loss := losses.MeanAbsoluteError{}
	out, err := loss.Forward(pred, target)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.Data().At64(0), 1e-12)
}

func TestBinaryCrossEntropyNonStandardFormula(t *testing.T) {
	pred := vec(t, true, 0.8, 0.2)
	target := vec(t, false, 1, 0)

	loss := losses.BinaryCrossEntropy{}
	out, err := loss.Forward(pred, target)
	require.NoError(t, err)
	// target*pred + (1-target)*(1-pred): [0.8, 0.8] -> mean 0.8
	assert.InDelta(t, 0.8, out.Data().At64(0), 1e-12)

	autograd.BackwardScalar(out, false)
	g, err := pred.Grad()
	require.NoError(t, err)
	// d/dpred = 2*target - 1: [1, -1], scaled by mean's 1/2
	assert.InDeltaSlice(t, []float64{0.5, -0.5}, g.Data().Data, 1e-9)
}

func TestCallRequiresTargets(t *testing.T) {
	pred := vec(t, false, 1, 2)
	loss := losses.MeanSquaredError{}
	_, err := losses.Call(loss, pred)
	assert.ErrorIs(t, err, losses.ErrRequiresTargets)

	target := vec(t, false, 1, 1)
	out, err := losses.Call(loss, pred, target)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out.Data().At64(0), 1e-12)
}

func TestBinaryCrossEntropyWeighted(t *testing.T) {
	pred := vec(t, false, 0.8, 0.2)
	target := vec(t, false, 1, 0)
	weights := vec(t, false, 2, 0.5)

	loss := losses.BinaryCrossEntropy{}
	out, err := loss.ForwardWeighted(pred, target, weights)
	require.NoError(t, err)
	// terms [0.8,0.8]*weights [2,0.5] = [1.6,0.4], mean 1.0
	assert.InDelta(t, 1.0, out.Data().At64(0), 1e-12)
}
