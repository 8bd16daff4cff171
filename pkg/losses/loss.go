// Package losses implements the loss functions trained models are
// evaluated against: each maps a prediction and a target to a scalar.
package losses

import "github.com/wrenford/gnn/pkg/autograd"

// Loss computes a scalar objective from a prediction and a target.
type Loss interface {
	Forward(inputs, targets autograd.Variable) (autograd.Variable, error)
}

// Call invokes l the way the original engine's Loss::operator() did,
// except that calling it with only a prediction and no target returns
// ErrRequiresTargets instead of throwing — there is no single-argument
// Forward to fall back to, since every concrete loss here needs both.
func Call(l Loss, inputs autograd.Variable, targets ...autograd.Variable) (autograd.Variable, error) {
	if len(targets) == 0 {
		return autograd.Variable{}, ErrRequiresTargets
	}
	return l.Forward(inputs, targets[0])
}

func flattenSquaredDiff(inputs, targets autograd.Variable) (autograd.Variable, error) {
	diff, err := autograd.Sub(inputs, targets)
	if err != nil {
		return autograd.Variable{}, err
	}
	sq, err := autograd.Mul(diff, diff)
	if err != nil {
		return autograd.Variable{}, err
	}
	return autograd.Flatten(sq), nil
}

// MeanSquaredError computes mean((inputs-targets)^2).
type MeanSquaredError struct{}

func (MeanSquaredError) Forward(inputs, targets autograd.Variable) (autograd.Variable, error) {
	flat, err := flattenSquaredDiff(inputs, targets)
	if err != nil {
		return autograd.Variable{}, err
	}
	return autograd.Mean(flat, []int{0})
}

// MeanAbsoluteError computes mean(|inputs-targets|).
type MeanAbsoluteError struct{}

func (MeanAbsoluteError) Forward(inputs, targets autograd.Variable) (autograd.Variable, error) {
	diff, err := autograd.Sub(inputs, targets)
	if err != nil {
		return autograd.Variable{}, err
	}
	flat := autograd.Flatten(autograd.Abs(diff))
	return autograd.Mean(flat, []int{0})
}

// binaryCrossEntropyTerm computes targets*inputs + (1-targets)*(1-inputs).
// This is the non-standard formula carried over unchanged from the
// original engine: it is not the logarithmic cross-entropy loss its name
// suggests, and its gradient with respect to inputs is the constant
// 2*targets-1 rather than anything resembling a log-loss gradient.
func binaryCrossEntropyTerm(inputs, targets autograd.Variable) (autograd.Variable, error) {
	term1, err := autograd.Mul(targets, inputs)
	if err != nil {
		return autograd.Variable{}, err
	}
	oneMinusTargets := autograd.AddScalar(autograd.Neg(targets), 1)
	oneMinusInputs := autograd.AddScalar(autograd.Neg(inputs), 1)
	term2, err := autograd.Mul(oneMinusTargets, oneMinusInputs)
	if err != nil {
		return autograd.Variable{}, err
	}
	return autograd.Add(term1, term2)
}

// BinaryCrossEntropy computes mean(targets*inputs + (1-targets)*(1-inputs)),
// the formula above rather than the standard log-loss — see its doc
// comment for why.
type BinaryCrossEntropy struct{}

func (BinaryCrossEntropy) Forward(inputs, targets autograd.Variable) (autograd.Variable, error) {
	term, err := binaryCrossEntropyTerm(inputs, targets)
	if err != nil {
		return autograd.Variable{}, err
	}
	return autograd.Mean(autograd.Flatten(term), []int{0})
}

// ForwardWeighted computes mean(weights*(targets*inputs + (1-targets)*(1-inputs))).
func (BinaryCrossEntropy) ForwardWeighted(inputs, targets, weights autograd.Variable) (autograd.Variable, error) {
	term, err := binaryCrossEntropyTerm(inputs, targets)
	if err != nil {
		return autograd.Variable{}, err
	}
	weighted, err := autograd.Mul(weights, term)
	if err != nil {
		return autograd.Variable{}, err
	}
	return autograd.Mean(autograd.Flatten(weighted), []int{0})
}
