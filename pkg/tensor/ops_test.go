package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenford/gnn/pkg/tensor"
)

func vec(vals ...float64) *tensor.Tensor {
	t, err := tensor.FromData(vals, len(vals))
	if err != nil {
		panic(err)
	}
	return t
}

func TestAddSubMulDiv(t *testing.T) {
	a := vec(1, 2, 3)
	b := vec(4, 5, 6)

	sum, err := tensor.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, sum.Data)

	diff, err := tensor.Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -3, -3}, diff.Data)

	prod, err := tensor.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10, 18}, prod.Data)

	quot, err := tensor.Div(b, a)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{4, 2.5, 2}, quot.Data, 1e-12)
}

func TestShapeMismatch(t *testing.T) {
	a := vec(1, 2, 3)
	b := vec(1, 2)
	_, err := tensor.Add(a, b)
	require.Error(t, err)
	var mismatch *tensor.ErrShapeMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestComparisons(t *testing.T) {
	a := vec(1, 5, 3)
	b := vec(2, 4, 3)

	gt, err := tensor.Greater(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, gt.Data)

	lt, err := tensor.Less(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, lt.Data)

	assert.Equal(t, []float64{1, 0, 1}, tensor.Not(gt).Data)
}

func TestTranscendentals(t *testing.T) {
	x := vec(0, 1)
	assert.InDeltaSlice(t, []float64{1, 2.718281828459045}, tensor.Exp(x).Data, 1e-9)
	assert.InDeltaSlice(t, []float64{0, 0}, tensor.Sin(vec(0, 0)).Data, 1e-12)
}

func TestSumMean(t *testing.T) {
	m, err := tensor.FromData([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	rowSum, err := tensor.Sum(m, []int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, rowSum.Shape)
	assert.Equal(t, []float64{6, 15}, rowSum.Data)

	colMean, err := tensor.Mean(m, []int{0})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, colMean.Shape)
	assert.InDeltaSlice(t, []float64{2.5, 3.5, 4.5}, colMean.Data, 1e-12)
}

func TestReshapeTransposeFlatten(t *testing.T) {
	m, err := tensor.FromData([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	r, err := tensor.Reshape(m, []int{3, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, r.Shape)
	assert.Equal(t, m.Data, r.Data)

	tr, err := tensor.Transpose(m)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, tr.Shape)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, tr.Data)

	assert.Equal(t, []int{6}, tensor.Flatten(m).Shape)
}

func TestTileAsSumAs(t *testing.T) {
	b, err := tensor.FromData([]float64{1, 2}, 2, 1)
	require.NoError(t, err)

	tiled, err := tensor.TileAs(b, []int{2, 4})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, tiled.Shape)
	assert.Equal(t, []float64{1, 1, 1, 1, 2, 2, 2, 2}, tiled.Data)

	reduced, err := tensor.SumAs(tiled, []int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, reduced.Shape)
	assert.InDeltaSlice(t, []float64{4, 8}, reduced.Data, 1e-12)
}

func TestMatMulVariants(t *testing.T) {
	a, err := tensor.FromData([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	b, err := tensor.FromData([]float64{5, 6, 7, 8}, 2, 2)
	require.NoError(t, err)

	c, err := tensor.MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{19, 22, 43, 50}, c.Data)

	aT, err := tensor.Transpose(a)
	require.NoError(t, err)
	tn, err := tensor.MatMulTN(a, b)
	require.NoError(t, err)
	want, err := tensor.MatMul(aT, b)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want.Data, tn.Data, 1e-9)

	bT, err := tensor.Transpose(b)
	require.NoError(t, err)
	nt, err := tensor.MatMulNT(a, b)
	require.NoError(t, err)
	want2, err := tensor.MatMul(a, bT)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want2.Data, nt.Data, 1e-9)
}
