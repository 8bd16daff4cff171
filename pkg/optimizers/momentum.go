package optimizers

import (
	"github.com/wrenford/gnn/pkg/autograd"
	"github.com/wrenford/gnn/pkg/tensor"
)

// Momentum implements classical momentum: v = momentum*v - lr*grad,
// param += v. Velocity is keyed by the parameter Variable's own handle,
// so reusing the same Variable across Step calls accumulates state
// correctly; a fresh Variable starts with zero velocity.
type Momentum struct {
	lr       float64
	momentum float64
	velocity map[autograd.Variable]*tensor.Tensor
}

// NewMomentum builds a Momentum optimizer with the given learning rate
// and momentum coefficient.
func NewMomentum(lr, momentum float64) *Momentum {
	return &Momentum{lr: lr, momentum: momentum, velocity: make(map[autograd.Variable]*tensor.Tensor)}
}

func (m *Momentum) SetLearningRate(lr float64) { m.lr = lr }

func (m *Momentum) ZeroGrad(params []autograd.Variable) { ZeroGrad(params) }

func (m *Momentum) Step(params []autograd.Variable) {
	for _, p := range params {
		g, ok := gradOrSkip(p)
		if !ok {
			continue
		}
		v, seen := m.velocity[p]
		if !seen {
			v = tensor.Zeros(p.Data().Shape...)
		}
		scaledV := tensor.MulScalar(v, m.momentum)
		scaledG := tensor.MulScalar(g.Data(), m.lr)
		newV, err := tensor.Sub(scaledV, scaledG)
		if err != nil {
			panic(err)
		}
		m.velocity[p] = newV

		newData, err := tensor.Add(p.Data(), newV)
		if err != nil {
			panic(err)
		}
		p.SetData(newData)
	}
}
