package layers

import (
	"golang.org/x/exp/rand"

	"github.com/wrenford/gnn/pkg/autograd"
	"github.com/wrenford/gnn/pkg/initializers"
	"github.com/wrenford/gnn/pkg/module"
)

// Linear applies a weight matrix (and optional bias) to its input via
// W·x + tileAs(b, result). spread is accepted for construction-call
// compatibility with the original engine but, as in the engine it was
// lifted from, never affects the drawn weights — LeCunNormal's own
// stddev rule is used regardless of its value.
type Linear struct {
	module.Base
	bias bool
}

// NewLinear builds a Linear layer with freshly initialized weights (and
// bias, unless bias is false).
func NewLinear(inputSize, outputSize int, bias bool, spread float64, src rand.Source) *Linear {
	_ = spread
	l := &Linear{bias: bias}
	w := initializers.LeCunNormal(outputSize, inputSize, src)
	if bias {
		b := initializers.LeCunNormal(outputSize, 1, src)
		l.SetParams([]autograd.Variable{w, b})
	} else {
		l.SetParams([]autograd.Variable{w})
	}
	return l
}

// NewLinearFromWeights builds a bias-free Linear layer from an
// explicitly supplied weight matrix.
func NewLinearFromWeights(w autograd.Variable) *Linear {
	l := &Linear{bias: false}
	l.SetParams([]autograd.Variable{w})
	return l
}

// NewLinearFromWeightsAndBias builds a Linear layer from explicit weight
// and bias Variables. It fails with ErrDimensionMismatch if the bias's
// row count doesn't match the weight's, or if the bias isn't a column
// vector.
func NewLinearFromWeightsAndBias(w, b autograd.Variable) (*Linear, error) {
	ws, bs := w.Data().Shape, b.Data().Shape
	if len(ws) < 1 || len(bs) < 1 || bs[0] != ws[0] {
		return nil, ErrDimensionMismatch
	}
	if len(bs) > 1 && bs[1] != 1 {
		return nil, ErrDimensionMismatch
	}
	l := &Linear{bias: true}
	l.SetParams([]autograd.Variable{w, b})
	return l, nil
}

// Forward computes W·input, adding the broadcast bias when present.
func (l *Linear) Forward(input autograd.Variable) autograd.Variable {
	params := l.Parameters()
	res, err := autograd.MatMul(params[0], input)
	if err != nil {
		panic(err)
	}
	if l.bias {
		tiled, err := autograd.TileAs(params[1], res.Data().Shape)
		if err != nil {
			panic(err)
		}
		res, err = autograd.Add(res, tiled)
		if err != nil {
			panic(err)
		}
	}
	return res
}
