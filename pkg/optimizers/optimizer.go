// Package optimizers implements parameter-update rules driven by the
// gradients pkg/autograd accumulates on each Variable.
package optimizers

import "github.com/wrenford/gnn/pkg/autograd"

// Optimizer is the shared contract every update rule implements: apply
// one step to a parameter list, adjust the learning rate, and clear
// accumulated gradients between steps.
type Optimizer interface {
	Step(params []autograd.Variable)
	SetLearningRate(lr float64)
	ZeroGrad(params []autograd.Variable)
}

// ZeroGrad clears the pending gradient on every parameter. Shared by all
// three optimizers below since none of them need per-parameter state
// for this step.
func ZeroGrad(params []autograd.Variable) {
	for _, p := range params {
		p.ZeroGrad()
	}
}

func gradOrSkip(p autograd.Variable) (autograd.Variable, bool) {
	g, err := p.Grad()
	if err != nil {
		return autograd.Variable{}, false
	}
	return g, true
}
