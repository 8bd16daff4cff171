package autograd

import (
	"github.com/wrenford/gnn/pkg/tensor"
)

// broadcastOperands tiles a and b up to their common broadcast shape,
// the same way the original array backend's tile_as/sum_as pair does:
// forward ops see two same-shaped tensors, backward ops fold gradients
// back down via SumAs to each operand's original shape.
func broadcastOperands(a, b *tensor.Tensor) (*tensor.Tensor, *tensor.Tensor, error) {
	shape := tensor.BroadcastShape(a.Shape, b.Shape)
	ta, err := tensor.TileAs(a, shape)
	if err != nil {
		return nil, nil, err
	}
	tb, err := tensor.TileAs(b, shape)
	if err != nil {
		return nil, nil, err
	}
	return ta, tb, nil
}

func foldGrad(g *tensor.Tensor, shape []int) Variable {
	out, err := tensor.SumAs(g, shape)
	if err != nil {
		panic(err)
	}
	return NewLeaf(out, false)
}

// Add computes a+b, broadcasting per the array backend's tile_as rule.
func Add(a, b Variable) (Variable, error) {
	ta, tb, err := broadcastOperands(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	out, err := tensor.Add(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	return NewDerived(out, []Variable{a, b}, func(inputs []Variable, gradOut Variable) {
		inputs[0].AddGrad(foldGrad(gradOut.Data(), inputs[0].Data().Shape))
		inputs[1].AddGrad(foldGrad(gradOut.Data(), inputs[1].Data().Shape))
	}), nil
}

// Sub computes a-b, broadcasting per the array backend's tile_as rule.
func Sub(a, b Variable) (Variable, error) {
	ta, tb, err := broadcastOperands(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	out, err := tensor.Sub(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	return NewDerived(out, []Variable{a, b}, func(inputs []Variable, gradOut Variable) {
		inputs[0].AddGrad(foldGrad(gradOut.Data(), inputs[0].Data().Shape))
		inputs[1].AddGrad(foldGrad(tensor.Neg(gradOut.Data()), inputs[1].Data().Shape))
	}), nil
}

// Mul computes the Hadamard product a*b, broadcasting per tile_as.
func Mul(a, b Variable) (Variable, error) {
	ta, tb, err := broadcastOperands(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	out, err := tensor.Mul(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	return NewDerived(out, []Variable{a, b}, func(inputs []Variable, gradOut Variable) {
		ga, err := tensor.Mul(gradOut.Data(), tb)
		if err != nil {
			panic(err)
		}
		gb, err := tensor.Mul(gradOut.Data(), ta)
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(foldGrad(ga, inputs[0].Data().Shape))
		inputs[1].AddGrad(foldGrad(gb, inputs[1].Data().Shape))
	}), nil
}

// Div computes a/b, broadcasting per tile_as.
func Div(a, b Variable) (Variable, error) {
	ta, tb, err := broadcastOperands(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	out, err := tensor.Div(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	return NewDerived(out, []Variable{a, b}, func(inputs []Variable, gradOut Variable) {
		ga, err := tensor.Div(gradOut.Data(), tb)
		if err != nil {
			panic(err)
		}
		tbSq, err := tensor.Mul(tb, tb)
		if err != nil {
			panic(err)
		}
		gbNum, err := tensor.Mul(gradOut.Data(), ta)
		if err != nil {
			panic(err)
		}
		gbNum = tensor.Neg(gbNum)
		gb, err := tensor.Div(gbNum, tbSq)
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(foldGrad(ga, inputs[0].Data().Shape))
		inputs[1].AddGrad(foldGrad(gb, inputs[1].Data().Shape))
	}), nil
}

// Greater, Less, GreaterEqual and LessEqual produce non-differentiable
// mask Variables (calcGrad=false) for masking and control-flow style
// logic, never to be backpropagated through directly. Max and Min
// compute their own masks with the tensor-level comparisons instead.
func Greater(a, b Variable) (Variable, error) {
	ta, tb, err := broadcastOperands(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	out, err := tensor.Greater(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	return NoGrad(out), nil
}

func Less(a, b Variable) (Variable, error) {
	ta, tb, err := broadcastOperands(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	out, err := tensor.Less(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	return NoGrad(out), nil
}

func GreaterEqual(a, b Variable) (Variable, error) {
	ta, tb, err := broadcastOperands(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	out, err := tensor.GreaterEqual(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	return NoGrad(out), nil
}

func LessEqual(a, b Variable) (Variable, error) {
	ta, tb, err := broadcastOperands(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	out, err := tensor.LessEqual(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	return NoGrad(out), nil
}

// Max computes the elementwise maximum of a and b. The comparison mask
// (1 where a>=b, else 0) is smuggled into the node's input list as a
// third, non-differentiable entry so the gradient closure can route the
// upstream gradient to whichever operand won each element without
// recomputing the comparison.
func Max(a, b Variable) (Variable, error) {
	ta, tb, err := broadcastOperands(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	out, err := tensor.MaxElementwise(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	mask, err := tensor.GreaterEqual(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	maskVar := NewLeaf(mask, false)
	return NewDerived(out, []Variable{a, b, maskVar}, func(inputs []Variable, gradOut Variable) {
		m := inputs[2].Data()
		ga, err := tensor.Mul(gradOut.Data(), m)
		if err != nil {
			panic(err)
		}
		gb, err := tensor.Mul(gradOut.Data(), tensor.Not(m))
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(foldGrad(ga, inputs[0].Data().Shape))
		inputs[1].AddGrad(foldGrad(gb, inputs[1].Data().Shape))
	}), nil
}

// Min computes the elementwise minimum of a and b, mirroring Max's mask
// trick (1 where a<=b, else 0).
func Min(a, b Variable) (Variable, error) {
	ta, tb, err := broadcastOperands(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	out, err := tensor.MinElementwise(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	mask, err := tensor.LessEqual(ta, tb)
	if err != nil {
		return Variable{}, err
	}
	maskVar := NewLeaf(mask, false)
	return NewDerived(out, []Variable{a, b, maskVar}, func(inputs []Variable, gradOut Variable) {
		m := inputs[2].Data()
		ga, err := tensor.Mul(gradOut.Data(), m)
		if err != nil {
			panic(err)
		}
		gb, err := tensor.Mul(gradOut.Data(), tensor.Not(m))
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(foldGrad(ga, inputs[0].Data().Shape))
		inputs[1].AddGrad(foldGrad(gb, inputs[1].Data().Shape))
	}), nil
}

// AddScalar adds the constant s to every element of a.
func AddScalar(a Variable, s float64) Variable {
	out := tensor.AddScalar(a.Data(), s)
	return NewDerived(out, []Variable{a}, func(inputs []Variable, gradOut Variable) {
		inputs[0].AddGrad(NewLeaf(gradOut.Data(), false))
	})
}

// MulScalar multiplies every element of a by the constant s.
func MulScalar(a Variable, s float64) Variable {
	out := tensor.MulScalar(a.Data(), s)
	return NewDerived(out, []Variable{a}, func(inputs []Variable, gradOut Variable) {
		inputs[0].AddGrad(NewLeaf(tensor.MulScalar(gradOut.Data(), s), false))
	})
}

func unary(a Variable, out *tensor.Tensor, backward func(a, out, gradOut *tensor.Tensor) *tensor.Tensor) Variable {
	return NewDerived(out, []Variable{a}, func(inputs []Variable, gradOut Variable) {
		g := backward(inputs[0].Data(), out, gradOut.Data())
		inputs[0].AddGrad(NewLeaf(g, false))
	})
}

// Neg computes -a.
func Neg(a Variable) Variable {
	out := tensor.Neg(a.Data())
	return unary(a, out, func(_, _, gradOut *tensor.Tensor) *tensor.Tensor {
		return tensor.Neg(gradOut)
	})
}

// Reciprocal computes 1/a.
func Reciprocal(a Variable) Variable {
	out := tensor.Reciprocal(a.Data())
	return unary(a, out, func(ax, outx, gradOut *tensor.Tensor) *tensor.Tensor {
		sq, err := tensor.Mul(outx, outx)
		if err != nil {
			panic(err)
		}
		g, err := tensor.Mul(gradOut, tensor.Neg(sq))
		if err != nil {
			panic(err)
		}
		return g
	})
}

// Exp computes e^a. Its own output is reused in the backward rule since
// d/dx e^x = e^x.
func Exp(a Variable) Variable {
	out := tensor.Exp(a.Data())
	return unary(a, out, func(_, outx, gradOut *tensor.Tensor) *tensor.Tensor {
		g, err := tensor.Mul(gradOut, outx)
		if err != nil {
			panic(err)
		}
		return g
	})
}

// Log computes the natural logarithm of a.
func Log(a Variable) Variable {
	out := tensor.Log(a.Data())
	return unary(a, out, func(ax, _, gradOut *tensor.Tensor) *tensor.Tensor {
		g, err := tensor.Div(gradOut, ax)
		if err != nil {
			panic(err)
		}
		return g
	})
}

// Sin computes sin(a).
func Sin(a Variable) Variable {
	out := tensor.Sin(a.Data())
	return unary(a, out, func(ax, _, gradOut *tensor.Tensor) *tensor.Tensor {
		g, err := tensor.Mul(gradOut, tensor.Cos(ax))
		if err != nil {
			panic(err)
		}
		return g
	})
}

// Cos computes cos(a).
func Cos(a Variable) Variable {
	out := tensor.Cos(a.Data())
	return unary(a, out, func(ax, _, gradOut *tensor.Tensor) *tensor.Tensor {
		g, err := tensor.Mul(gradOut, tensor.Neg(tensor.Sin(ax)))
		if err != nil {
			panic(err)
		}
		return g
	})
}

// Tanh computes tanh(a).
func Tanh(a Variable) Variable {
	out := tensor.TanhElem(a.Data())
	return unary(a, out, func(_, outx, gradOut *tensor.Tensor) *tensor.Tensor {
		sq, err := tensor.Mul(outx, outx)
		if err != nil {
			panic(err)
		}
		oneMinusSq := tensor.AddScalar(tensor.Neg(sq), 1)
		g, err := tensor.Mul(gradOut, oneMinusSq)
		if err != nil {
			panic(err)
		}
		return g
	})
}

// Sigmoid computes the logistic function of a.
func Sigmoid(a Variable) Variable {
	out := tensor.Sigmoid(a.Data())
	return unary(a, out, func(_, outx, gradOut *tensor.Tensor) *tensor.Tensor {
		oneMinus := tensor.AddScalar(tensor.Neg(outx), 1)
		deriv, err := tensor.Mul(outx, oneMinus)
		if err != nil {
			panic(err)
		}
		g, err := tensor.Mul(gradOut, deriv)
		if err != nil {
			panic(err)
		}
		return g
	})
}

// Abs computes |a|. The backward rule uses the sign of a directly
// (Greater(a,0) minus Signbit(a)), not the output, so it stays correct
// at a==0 where the output's own magnitude carries no sign information.
func Abs(a Variable) Variable {
	out := tensor.Abs(a.Data())
	return unary(a, out, func(ax, _, gradOut *tensor.Tensor) *tensor.Tensor {
		zero := tensor.Zeros(ax.Shape...)
		pos, err := tensor.Greater(ax, zero)
		if err != nil {
			panic(err)
		}
		neg := tensor.Signbit(ax)
		sign, err := tensor.Sub(pos, neg)
		if err != nil {
			panic(err)
		}
		g, err := tensor.Mul(gradOut, sign)
		if err != nil {
			panic(err)
		}
		return g
	})
}

// Sum reduces a along axes, keeping each reduced axis at size 1.
func Sum(a Variable, axes []int) (Variable, error) {
	out, err := tensor.Sum(a.Data(), axes)
	if err != nil {
		return Variable{}, err
	}
	return NewDerived(out, []Variable{a}, func(inputs []Variable, gradOut Variable) {
		g, err := tensor.TileAs(gradOut.Data(), inputs[0].Data().Shape)
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(NewLeaf(g, false))
	}), nil
}

// Mean reduces a along axes by averaging. Unlike the original engine's
// mean backward, which scaled the broadcast gradient by the reduced
// element count instead of its reciprocal, this divides by count — see
// the open-question resolution recorded for the mean operation.
func Mean(a Variable, axes []int) (Variable, error) {
	out, err := tensor.Mean(a.Data(), axes)
	if err != nil {
		return Variable{}, err
	}
	count := 1
	for _, ax := range axes {
		count *= a.Data().Shape[ax]
	}
	return NewDerived(out, []Variable{a}, func(inputs []Variable, gradOut Variable) {
		tiled, err := tensor.TileAs(gradOut.Data(), inputs[0].Data().Shape)
		if err != nil {
			panic(err)
		}
		g := tensor.MulScalar(tiled, 1.0/float64(count))
		inputs[0].AddGrad(NewLeaf(g, false))
	}), nil
}

// TileAs replicates a up to refShape; it is the adjoint of SumAs.
func TileAs(a Variable, refShape []int) (Variable, error) {
	out, err := tensor.TileAs(a.Data(), refShape)
	if err != nil {
		return Variable{}, err
	}
	return NewDerived(out, []Variable{a}, func(inputs []Variable, gradOut Variable) {
		g, err := tensor.SumAs(gradOut.Data(), inputs[0].Data().Shape)
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(NewLeaf(g, false))
	}), nil
}

// SumAs reduces a down to refShape; it is the adjoint of TileAs.
func SumAs(a Variable, refShape []int) (Variable, error) {
	out, err := tensor.SumAs(a.Data(), refShape)
	if err != nil {
		return Variable{}, err
	}
	return NewDerived(out, []Variable{a}, func(inputs []Variable, gradOut Variable) {
		g, err := tensor.TileAs(gradOut.Data(), inputs[0].Data().Shape)
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(NewLeaf(g, false))
	}), nil
}

// Reshape returns a with newShape, preserving element order.
func Reshape(a Variable, newShape []int) (Variable, error) {
	out, err := tensor.Reshape(a.Data(), newShape)
	if err != nil {
		return Variable{}, err
	}
	origShape := append([]int{}, a.Data().Shape...)
	return NewDerived(out, []Variable{a}, func(inputs []Variable, gradOut Variable) {
		g, err := tensor.Reshape(gradOut.Data(), origShape)
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(NewLeaf(g, false))
	}), nil
}

// Flatten collapses a to a single axis.
func Flatten(a Variable) Variable {
	v, err := Reshape(a, []int{a.Data().Len()})
	if err != nil {
		panic(err)
	}
	return v
}

// Transpose swaps the two axes of a 2-D Variable.
func Transpose(a Variable) (Variable, error) {
	out, err := tensor.Transpose(a.Data())
	if err != nil {
		return Variable{}, err
	}
	return NewDerived(out, []Variable{a}, func(inputs []Variable, gradOut Variable) {
		g, err := tensor.Transpose(gradOut.Data())
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(NewLeaf(g, false))
	}), nil
}

// MatMul computes a·b.
func MatMul(a, b Variable) (Variable, error) {
	out, err := tensor.MatMul(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	return NewDerived(out, []Variable{a, b}, func(inputs []Variable, gradOut Variable) {
		ga, err := tensor.MatMulNT(gradOut.Data(), inputs[1].Data())
		if err != nil {
			panic(err)
		}
		gb, err := tensor.MatMulTN(inputs[0].Data(), gradOut.Data())
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(NewLeaf(ga, false))
		inputs[1].AddGrad(NewLeaf(gb, false))
	}), nil
}

// MatMulTN computes aᵀ·b without materializing aᵀ.
func MatMulTN(a, b Variable) (Variable, error) {
	out, err := tensor.MatMulTN(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	return NewDerived(out, []Variable{a, b}, func(inputs []Variable, gradOut Variable) {
		ga, err := tensor.MatMulNT(inputs[1].Data(), gradOut.Data())
		if err != nil {
			panic(err)
		}
		gb, err := tensor.MatMul(inputs[0].Data(), gradOut.Data())
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(NewLeaf(ga, false))
		inputs[1].AddGrad(NewLeaf(gb, false))
	}), nil
}

// MatMulNT computes a·bᵀ without materializing bᵀ.
func MatMulNT(a, b Variable) (Variable, error) {
	out, err := tensor.MatMulNT(a.Data(), b.Data())
	if err != nil {
		return Variable{}, err
	}
	return NewDerived(out, []Variable{a, b}, func(inputs []Variable, gradOut Variable) {
		ga, err := tensor.MatMul(gradOut.Data(), inputs[1].Data())
		if err != nil {
			panic(err)
		}
		gb, err := tensor.MatMulTN(gradOut.Data(), inputs[0].Data())
		if err != nil {
			panic(err)
		}
		inputs[0].AddGrad(NewLeaf(ga, false))
		inputs[1].AddGrad(NewLeaf(gb, false))
	}), nil
}
