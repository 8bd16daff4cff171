package autograd_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenford/gnn/pkg/autograd"
	"github.com/wrenford/gnn/pkg/tensor"
)

func leaf(t *testing.T, calcGrad bool, vals []float64, shape ...int) autograd.Variable {
	t.Helper()
	if len(shape) == 0 {
		shape = []int{len(vals)}
	}
	ten, err := tensor.FromData(vals, shape...)
	require.NoError(t, err)
	return autograd.NewLeaf(ten, calcGrad)
}

func TestAddForwardAndBackward(t *testing.T) {
	a := leaf(t, true, []float64{1, 2})
	b := leaf(t, true, []float64{3, 4})

	y, err := autograd.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6}, y.Data().Data)

	autograd.BackwardScalar(y, false)

	ga, err := a.Grad()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, ga.Data().Data)

	gb, err := b.Grad()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, gb.Data().Data)
}

func TestMulBackward(t *testing.T) {
	a := leaf(t, true, []float64{2, 5})
	b := leaf(t, true, []float64{3, 7})

	y, err := autograd.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 35}, y.Data().Data)

	autograd.BackwardScalar(y, false)

	ga, err := a.Grad()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, ga.Data().Data)

	gb, err := b.Grad()
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, gb.Data().Data)
}

func TestBroadcastAddFoldsGradientBackDown(t *testing.T) {
	row := leaf(t, true, []float64{1, 2, 3}, 1, 3)
	col := leaf(t, true, []float64{10, 20}, 2, 1)

	y, err := autograd.Add(row, col)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, y.Data().Shape)

	autograd.BackwardScalar(y, false)

	gRow, err := row.Grad()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, gRow.Data().Shape)
	assert.Equal(t, []float64{2, 2, 2}, gRow.Data().Data)

	gCol, err := col.Grad()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, gCol.Data().Shape)
	assert.Equal(t, []float64{3, 3}, gCol.Data().Data)
}

func TestDisabledGradientDoesNotAccumulate(t *testing.T) {
	a := leaf(t, false, []float64{1, 2})
	b := leaf(t, true, []float64{3, 4})

	y, err := autograd.Add(a, b)
	require.NoError(t, err)
	autograd.BackwardScalar(y, false)

	_, err = a.Grad()
	assert.ErrorIs(t, err, autograd.ErrGradientDisabled)

	gb, err := b.Grad()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, gb.Data().Data)
}

func TestGradNotAvailableBeforeBackward(t *testing.T) {
	a := leaf(t, true, []float64{1, 2})
	_, err := a.Grad()
	assert.ErrorIs(t, err, autograd.ErrGradientNotAvailable)
}

func TestMeanBackwardScalesByReciprocalCount(t *testing.T) {
	x := leaf(t, true, []float64{1, 2, 3, 4})
	y, err := autograd.Mean(x, []int{0})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, y.Data().At64(0), 1e-12)

	autograd.BackwardScalar(y, false)

	gx, err := x.Grad()
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 0.25, gx.Data().At64(i), 1e-12)
	}
}

func TestSharedVariableAccumulatesFromMultiplePaths(t *testing.T) {
	x := leaf(t, true, []float64{3})

	xSquared, err := autograd.Mul(x, x)
	require.NoError(t, err)
	y, err := autograd.Add(xSquared, x)
	require.NoError(t, err)

	autograd.BackwardScalar(y, false)

	gx, err := x.Grad()
	require.NoError(t, err)
	assert.InDelta(t, 7, gx.Data().At64(0), 1e-9)
}

func TestMaxRoutesGradientToWinner(t *testing.T) {
	a := leaf(t, true, []float64{1, 5})
	b := leaf(t, true, []float64{4, 2})

	y, err := autograd.Max(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5}, y.Data().Data)

	autograd.BackwardScalar(y, false)

	ga, err := a.Grad()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, ga.Data().Data)

	gb, err := b.Grad()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, gb.Data().Data)
}

func TestExpAndLogGradients(t *testing.T) {
	x := leaf(t, true, []float64{0, 1})
	y := autograd.Exp(x)
	autograd.BackwardScalar(y, false)
	gx, err := x.Grad()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, math.E}, gx.Data().Data, 1e-9)

	x2 := leaf(t, true, []float64{1, 4})
	y2 := autograd.Log(x2)
	autograd.BackwardScalar(y2, false)
	gx2, err := x2.Grad()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0.25}, gx2.Data().Data, 1e-9)
}

func TestMatMulForwardAndBackwardShapes(t *testing.T) {
	A := leaf(t, true, []float64{1, 2, 3, 4}, 2, 2)
	B := leaf(t, true, []float64{5, 6, 7, 8}, 2, 2)

	C, err := autograd.MatMul(A, B)
	require.NoError(t, err)
	assert.Equal(t, []float64{19, 22, 43, 50}, C.Data().Data)

	autograd.BackwardScalar(C, false)

	gA, err := A.Grad()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, gA.Data().Shape)

	gB, err := B.Grad()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, gB.Data().Shape)
}

func TestReshapeRoundTripsGradientShape(t *testing.T) {
	x := leaf(t, true, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	y, err := autograd.Reshape(x, []int{3, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, y.Data().Shape)

	autograd.BackwardScalar(y, false)
	gx, err := x.Grad()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, gx.Data().Shape)
}

func TestDetachStopsGradientFlow(t *testing.T) {
	a := leaf(t, true, []float64{1, 2})
	b, err := autograd.Add(a, leaf(t, true, []float64{1, 1}))
	require.NoError(t, err)

	b.SetCalcGrad(false)
	assert.False(t, b.CalcGrad())
	assert.Empty(t, b.Inputs())
	assert.False(t, b.HasGradFunc())
}

func TestCheckGradientOnQuadraticForm(t *testing.T) {
	ok := autograd.CheckGradient(func(inputs []autograd.Variable) autograd.Variable {
		x := inputs[0]
		xSquared, err := autograd.Mul(x, x)
		require.NoError(t, err)
		y, err := autograd.Add(xSquared, autograd.MulScalar(x, 2))
		require.NoError(t, err)
		return y
	}, []autograd.Variable{leaf(t, true, []float64{3, -1, 0.5})}, 1e-6, 1e-4)
	assert.True(t, ok)
}

func TestCheckGradientOnSigmoidExpComposite(t *testing.T) {
	ok := autograd.CheckGradient(func(inputs []autograd.Variable) autograd.Variable {
		x := inputs[0]
		s := autograd.Sigmoid(x)
		return autograd.Exp(s)
	}, []autograd.Variable{leaf(t, true, []float64{0.2, -0.5, 1.3})}, 1e-6, 1e-4)
	assert.True(t, ok)
}
