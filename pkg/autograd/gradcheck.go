package autograd

import (
	"math"

	"github.com/wrenford/gnn/pkg/tensor"
)

// CheckGradient verifies analytic gradients against a central-difference
// numeric estimate. build receives a fresh set of leaf Variables (copies
// of inputs' current values, each with calcGrad enabled) and must
// construct the graph to be checked, returning its output. If the
// output is not scalar, its elements are summed before differencing.
// eps is the finite-difference step and tol the maximum tolerated
// relative error; reasonable defaults are 1e-6 and 1e-4.
func CheckGradient(build func(inputs []Variable) Variable, inputs []Variable, eps, tol float64) bool {
	sizes := make([]int, len(inputs))
	total := 0
	for i, in := range inputs {
		sizes[i] = in.Data().Len()
		total += sizes[i]
	}

	pack := func(vars []Variable) []float64 {
		x := make([]float64, total)
		pos := 0
		for i, v := range vars {
			for j := 0; j < sizes[i]; j++ {
				x[pos] = v.Data().At64(j)
				pos++
			}
		}
		return x
	}

	makeLeaves := func(x []float64) []Variable {
		leaves := make([]Variable, len(inputs))
		pos := 0
		for i, orig := range inputs {
			data := make([]float64, sizes[i])
			copy(data, x[pos:pos+sizes[i]])
			pos += sizes[i]
			t, err := tensor.FromData(data, orig.Data().Shape...)
			if err != nil {
				panic(err)
			}
			leaves[i] = NewLeaf(t, true)
		}
		return leaves
	}

	evalScalar := func(x []float64) float64 {
		out := build(makeLeaves(x))
		s := 0.0
		for i := 0; i < out.Data().Len(); i++ {
			s += out.Data().At64(i)
		}
		return s
	}

	x0 := pack(inputs)

	leavesAnal := makeLeaves(x0)
	outAnal := build(leavesAnal)
	BackwardScalar(outAnal, false)

	analytic := make([]float64, total)
	pos := 0
	for i, v := range leavesAnal {
		g, err := v.Grad()
		if err != nil {
			pos += sizes[i]
			continue
		}
		for j := 0; j < sizes[i]; j++ {
			analytic[pos] = g.Data().At64(j)
			pos++
		}
	}

	numeric := make([]float64, total)
	for i := 0; i < total; i++ {
		xInc := append([]float64{}, x0...)
		xDec := append([]float64{}, x0...)
		xInc[i] += eps
		xDec[i] -= eps
		numeric[i] = (evalScalar(xInc) - evalScalar(xDec)) / (2 * eps)
	}

	for i := 0; i < total; i++ {
		absErr := math.Abs(analytic[i] - numeric[i])
		m := math.Max(1.0, math.Max(math.Abs(analytic[i]), math.Abs(numeric[i])))
		if absErr/m > tol {
			return false
		}
	}
	return true
}
