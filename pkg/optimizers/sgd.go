package optimizers

import (
	"github.com/wrenford/gnn/pkg/autograd"
	"github.com/wrenford/gnn/pkg/tensor"
)

// SGD implements plain gradient descent: param -= lr * grad.
type SGD struct {
	lr float64
}

// NewSGD builds an SGD optimizer with the given learning rate.
func NewSGD(lr float64) *SGD {
	return &SGD{lr: lr}
}

func (s *SGD) SetLearningRate(lr float64) { s.lr = lr }

func (s *SGD) ZeroGrad(params []autograd.Variable) { ZeroGrad(params) }

func (s *SGD) Step(params []autograd.Variable) {
	for _, p := range params {
		g, ok := gradOrSkip(p)
		if !ok {
			continue
		}
		update := tensor.MulScalar(g.Data(), s.lr)
		newData, err := tensor.Sub(p.Data(), update)
		if err != nil {
			panic(err)
		}
		p.SetData(newData)
	}
}
