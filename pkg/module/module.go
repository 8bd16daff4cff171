// Package module defines the Module contract shared by every layer:
// something that holds a set of trainable parameters and maps one
// Variable to another. Losses use their own two-argument Loss interface
// in pkg/losses instead.
package module

import "github.com/wrenford/gnn/pkg/autograd"

// Module is anything with trainable parameters and a forward pass.
// Forward is exposed both directly and via Call so a Module value can
// be used like a function, matching the original engine's operator()
// convention.
type Module interface {
	Parameters() []autograd.Variable
	Train()
	Eval()
	Forward(input autograd.Variable) autograd.Variable
}

// Base implements the parameter bookkeeping shared by every concrete
// layer: Train/Eval simply flip calcGrad on every held parameter.
// Embedding Base gives a layer Parameters/Train/Eval for free; it still
// must implement Forward itself.
type Base struct {
	params []autograd.Variable
}

// NewBase constructs a Base holding the given parameters.
func NewBase(parameters ...autograd.Variable) Base {
	return Base{params: parameters}
}

// SetParams replaces the held parameter list.
func (b *Base) SetParams(parameters []autograd.Variable) {
	b.params = parameters
}

// Parameters returns the layer's trainable Variables.
func (b *Base) Parameters() []autograd.Variable {
	return b.params
}

// Train enables gradient accumulation on every parameter.
func (b *Base) Train() {
	for _, p := range b.params {
		p.SetCalcGrad(true)
	}
}

// Eval disables gradient accumulation on every parameter, detaching
// them from any graph they were part of.
func (b *Base) Eval() {
	for _, p := range b.params {
		p.SetCalcGrad(false)
	}
}

// Call invokes m's forward pass, mirroring the original engine's
// operator() convention for calling a Module like a function.
func Call(m Module, input autograd.Variable) autograd.Variable {
	return m.Forward(input)
}
