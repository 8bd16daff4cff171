package layers

import (
	"github.com/wrenford/gnn/pkg/autograd"
	"github.com/wrenford/gnn/pkg/initializers"
	"github.com/wrenford/gnn/pkg/module"
	"github.com/wrenford/gnn/pkg/tensor"
)

func scalarVar(value float64) autograd.Variable {
	return autograd.NoGrad(tensor.Full(value, 1))
}

// Sigmoid applies the logistic function elementwise.
type Sigmoid struct{ module.Base }

// NewSigmoid builds a parameter-free Sigmoid layer.
func NewSigmoid() *Sigmoid { return &Sigmoid{} }

func (s *Sigmoid) Forward(input autograd.Variable) autograd.Variable {
	return autograd.Sigmoid(input)
}

// Tanh applies the hyperbolic tangent elementwise.
type Tanh struct{ module.Base }

// NewTanh builds a parameter-free Tanh layer.
func NewTanh() *Tanh { return &Tanh{} }

func (t *Tanh) Forward(input autograd.Variable) autograd.Variable {
	return autograd.Tanh(input)
}

// ReLU applies max(x, 0) elementwise.
type ReLU struct{ module.Base }

// NewReLU builds a parameter-free ReLU layer.
func NewReLU() *ReLU { return &ReLU{} }

func (r *ReLU) Forward(input autograd.Variable) autograd.Variable {
	out, err := autograd.Max(input, scalarVar(0))
	if err != nil {
		panic(err)
	}
	return out
}

// LeakyReLU applies max(x, slope*x) elementwise.
type LeakyReLU struct {
	module.Base
	slope float64
}

// NewLeakyReLU builds a parameter-free LeakyReLU layer with the given
// negative-side slope.
func NewLeakyReLU(slope float64) *LeakyReLU {
	return &LeakyReLU{slope: slope}
}

func (l *LeakyReLU) Forward(input autograd.Variable) autograd.Variable {
	out, err := autograd.Max(input, autograd.MulScalar(input, l.slope))
	if err != nil {
		panic(err)
	}
	return out
}

// PReLU applies a per-channel learned slope to the negative side:
// (input>=0)*input + (input<0)*input*w.
type PReLU struct{ module.Base }

// NewPReLU builds a PReLU layer with size learned slopes initialized to
// value.
func NewPReLU(size int, value float64) *PReLU {
	p := &PReLU{}
	w := initializers.Constant(value, size, 1)
	p.SetParams([]autograd.Variable{w})
	return p
}

// NewPReLUFromWeights builds a PReLU layer from an explicit slope
// Variable.
func NewPReLUFromWeights(w autograd.Variable) *PReLU {
	p := &PReLU{}
	p.SetParams([]autograd.Variable{w})
	return p
}

func (p *PReLU) Forward(input autograd.Variable) autograd.Variable {
	mask, err := autograd.GreaterEqual(input, scalarVar(0))
	if err != nil {
		panic(err)
	}
	notMask := autograd.NoGrad(tensor.Not(mask.Data()))

	pos, err := autograd.Mul(input, mask)
	if err != nil {
		panic(err)
	}
	w := p.Parameters()[0]
	tiledW, err := autograd.TileAs(w, input.Data().Shape)
	if err != nil {
		panic(err)
	}
	negScaled, err := autograd.Mul(input, notMask)
	if err != nil {
		panic(err)
	}
	neg, err := autograd.Mul(negScaled, tiledW)
	if err != nil {
		panic(err)
	}
	out, err := autograd.Add(pos, neg)
	if err != nil {
		panic(err)
	}
	return out
}

// ELU applies (input>=0)*input + (input<0)*alpha*(exp(input)-1).
type ELU struct {
	module.Base
	alpha float64
}

// NewELU builds a parameter-free ELU layer with the given alpha.
func NewELU(alpha float64) *ELU {
	return &ELU{alpha: alpha}
}

func (e *ELU) Forward(input autograd.Variable) autograd.Variable {
	mask, err := autograd.GreaterEqual(input, scalarVar(0))
	if err != nil {
		panic(err)
	}
	notMask := autograd.NoGrad(tensor.Not(mask.Data()))

	pos, err := autograd.Mul(input, mask)
	if err != nil {
		panic(err)
	}
	expPart := autograd.AddScalar(autograd.Exp(input), -1)
	scaled := autograd.MulScalar(expPart, e.alpha)
	neg, err := autograd.Mul(notMask, scaled)
	if err != nil {
		panic(err)
	}
	out, err := autograd.Add(pos, neg)
	if err != nil {
		panic(err)
	}
	return out
}

// ThresholdReLU zeroes out every element below threshold.
type ThresholdReLU struct {
	module.Base
	threshold float64
}

// NewThresholdReLU builds a parameter-free ThresholdReLU layer.
func NewThresholdReLU(threshold float64) *ThresholdReLU {
	return &ThresholdReLU{threshold: threshold}
}

func (t *ThresholdReLU) Forward(input autograd.Variable) autograd.Variable {
	mask, err := autograd.GreaterEqual(input, scalarVar(t.threshold))
	if err != nil {
		panic(err)
	}
	out, err := autograd.Mul(input, mask)
	if err != nil {
		panic(err)
	}
	return out
}
