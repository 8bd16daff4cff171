// Package autograd implements the reverse-mode automatic differentiation
// engine: the Variable handle, the fixed algebra of differentiable
// operations over it (in ops.go), and topological backward traversal
// (in backward.go).
package autograd

import (
	"sync"

	"github.com/wrenford/gnn/pkg/tensor"
)

// GradFunc is the gradient closure stored on a derived Variable. Given
// the full input list it was built from and the upstream gradient, it
// deposits contributions into each differentiable input via AddGrad.
// Non-differentiable auxiliary values (e.g. the comparison mask used by
// Max/Min) may be smuggled in at the end of inputs; the closure
// retrieves them positionally and never calls AddGrad on them.
type GradFunc func(inputs []Variable, gradOut Variable)

// record is the shared state behind every Variable
// handle that points at it. Mutation (AddGrad, ZeroGrad, SetCalcGrad) is
// guarded by mu so a Variable can be safely shared, even though the
// engine's primary contract assumes single-threaded use per forward pass.
type record struct {
	mu       sync.Mutex
	data     *tensor.Tensor
	calcGrad bool
	inputs   []Variable
	gradFn   GradFunc
	grads    []Variable
}

// Variable is a node in the autodiff computation graph: a handle to a
// shared record holding an array payload, the inputs it was built from,
// and the rule for back-propagating through the operation that produced
// it. Copying a Variable copies the handle, not the record — all copies
// observe the same gradient accumulator and calcGrad flag.
type Variable struct {
	rec *record
}

// NewLeaf wraps data as a leaf Variable with no inputs and no gradient
// rule. calcGrad controls whether it participates in further graphs and
// accumulates gradients.
func NewLeaf(data *tensor.Tensor, calcGrad bool) Variable {
	return Variable{rec: &record{data: data, calcGrad: calcGrad}}
}

// NewDerived builds a Variable from a forward result, the ordered inputs
// it was computed from, and the gradient closure that backpropagates
// through it. If none of inputs requires a gradient, the DAG is pruned
// at construction time: the result is built as a constant with no
// inputs and no closure, exactly as if it were a fresh leaf.
func NewDerived(data *tensor.Tensor, inputs []Variable, gradFn GradFunc) Variable {
	needsGrad := false
	for _, in := range inputs {
		if in.CalcGrad() {
			needsGrad = true
			break
		}
	}
	if !needsGrad {
		return Variable{rec: &record{data: data, calcGrad: false}}
	}
	return Variable{rec: &record{data: data, calcGrad: true, inputs: inputs, gradFn: gradFn}}
}

// Data returns the array payload of the Variable.
func (v Variable) Data() *tensor.Tensor {
	return v.rec.data
}

// CalcGrad reports whether this Variable participates in gradient
// accumulation and graph construction.
func (v Variable) CalcGrad() bool {
	v.rec.mu.Lock()
	defer v.rec.mu.Unlock()
	return v.rec.calcGrad
}

// SetCalcGrad flips the calcGrad flag. Setting it to false detaches the
// node from its graph: inputs, the gradient closure and any pending
// gradient contributions are forcibly cleared, per the invariant that a
// non-grad Variable is indistinguishable from a fresh constant leaf.
func (v Variable) SetCalcGrad(calcGrad bool) {
	v.rec.mu.Lock()
	defer v.rec.mu.Unlock()
	v.rec.calcGrad = calcGrad
	if !calcGrad {
		v.rec.gradFn = nil
		v.rec.inputs = nil
		v.rec.grads = nil
	}
}

// SetData replaces the Variable's array payload in place, leaving its
// graph structure and calcGrad flag untouched. Optimizers use this to
// apply a parameter update without constructing a new handle that
// callers holding the old one wouldn't see.
func (v Variable) SetData(data *tensor.Tensor) {
	v.rec.mu.Lock()
	defer v.rec.mu.Unlock()
	v.rec.data = data
}

// Inputs returns the ordered list of Variables this node was built from.
// Empty for leaves and for constants.
func (v Variable) Inputs() []Variable {
	return v.rec.inputs
}

// HasGradFunc reports whether this Variable has a gradient closure,
// i.e. whether it is a derived (non-leaf) node.
func (v Variable) HasGradFunc() bool {
	return v.rec.gradFn != nil
}

// id identifies the underlying record for DAG deduplication.
func (v Variable) id() *record {
	return v.rec
}

// AddGrad appends g to the pending gradient contributions if calcGrad is
// true; otherwise it is a no-op.
func (v Variable) AddGrad(g Variable) {
	v.rec.mu.Lock()
	defer v.rec.mu.Unlock()
	if !v.rec.calcGrad {
		return
	}
	v.rec.grads = append(v.rec.grads, g)
}

// ZeroGrad empties the pending gradient accumulator without touching the
// graph.
func (v Variable) ZeroGrad() {
	v.rec.mu.Lock()
	defer v.rec.mu.Unlock()
	v.rec.grads = nil
}

// Grad returns the single accumulated gradient. It fails with
// ErrGradientDisabled if calcGrad is false, or ErrGradientNotAvailable
// if no gradient has been received (e.g. Backward has not run yet, or
// this Variable was not the retain-graph's output).
func (v Variable) Grad() (Variable, error) {
	v.rec.mu.Lock()
	defer v.rec.mu.Unlock()
	if !v.rec.calcGrad {
		return Variable{}, ErrGradientDisabled
	}
	if len(v.rec.grads) == 0 {
		return Variable{}, ErrGradientNotAvailable
	}
	return v.rec.grads[0], nil
}

// evalGrad collapses any accumulated contributions into a single
// Variable by summation, forcing evaluation of the resulting array so a
// lazy backend's expression tree stays bounded, then sets the collapsed
// gradient's own calcGrad according to retain (enabling or disabling
// second-order differentiation through it).
func (v Variable) evalGrad(retain bool) {
	v.rec.mu.Lock()
	grads := v.rec.grads
	v.rec.mu.Unlock()

	if len(grads) == 0 {
		return
	}
	summed := grads[0]
	for _, g := range grads[1:] {
		data, err := tensor.Add(summed.Data(), g.Data())
		if err != nil {
			panic(err)
		}
		summed = NewLeaf(data, false)
	}
	summed.Data().Eval()
	summed.SetCalcGrad(retain)

	v.rec.mu.Lock()
	v.rec.grads = []Variable{summed}
	v.rec.mu.Unlock()
}

// calcGradInputs collapses this node's pending gradients (see evalGrad)
// and, if it has a gradient closure, invokes it with the node's own
// inputs and the collapsed upstream gradient.
func (v Variable) calcGradInputs(retain bool) {
	v.evalGrad(retain)

	v.rec.mu.Lock()
	gradFn := v.rec.gradFn
	inputs := v.rec.inputs
	var gradOut Variable
	if len(v.rec.grads) > 0 {
		gradOut = v.rec.grads[0]
	}
	v.rec.mu.Unlock()

	if gradFn == nil || gradOut.rec == nil {
		return
	}
	gradFn(inputs, gradOut)
}

// Input wraps an array as a leaf Variable with calcGrad=false, for use
// as model input.
func Input(data *tensor.Tensor) Variable {
	return NewLeaf(data, false)
}

// NoGrad wraps an array as a leaf Variable with calcGrad=false, for use
// as a training target or any other non-differentiable constant.
func NoGrad(data *tensor.Tensor) Variable {
	return NewLeaf(data, false)
}
