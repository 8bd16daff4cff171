package layers

import (
	"golang.org/x/exp/rand"

	"github.com/wrenford/gnn/pkg/autograd"
	"github.com/wrenford/gnn/pkg/module"
	"github.com/wrenford/gnn/pkg/tensor"
)

// Dropout zeroes elements independently with probability ratio during
// training, and passes input through unchanged during evaluation. It
// does not rescale the surviving elements by 1/(1-ratio): this matches
// the original engine's behavior rather than the inverted-dropout
// convention, so a model trained with it needs no adjustment at
// inference time but the expected activation magnitude does shift
// between train and eval.
type Dropout struct {
	module.Base
	ratio   float64
	isTrain bool
	src     rand.Source
}

// NewDropout builds a Dropout layer with the given drop probability,
// drawing its per-call mask from src.
func NewDropout(ratio float64, src rand.Source) *Dropout {
	return &Dropout{ratio: ratio, src: src}
}

// Train puts the layer into training mode, where masking is applied.
func (d *Dropout) Train() {
	d.Base.Train()
	d.isTrain = true
}

// Eval puts the layer into evaluation mode, where input passes through.
func (d *Dropout) Eval() {
	d.Base.Eval()
	d.isTrain = false
}

func (d *Dropout) Forward(input autograd.Variable) autograd.Variable {
	if !d.isTrain {
		return input
	}
	u := tensor.Uniform(0, 1, d.src, input.Data().Shape...)
	mask, err := tensor.Greater(u, tensor.Full(d.ratio, input.Data().Shape...))
	if err != nil {
		panic(err)
	}
	out, err := autograd.Mul(input, autograd.NoGrad(mask))
	if err != nil {
		panic(err)
	}
	return out
}
