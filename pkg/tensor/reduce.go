package tensor

import "fmt"

// reduceAxis collapses a along a single axis using the given fold,
// producing a tensor whose size on that axis is 1.
func reduceAxis(a *Tensor, axis int, fold func(acc, x float64) float64, init float64) (*Tensor, error) {
	if axis < 0 || axis >= len(a.Shape) {
		return nil, fmt.Errorf("tensor: reduce axis %d out of range for shape %v", axis, a.Shape)
	}
	outShape := append([]int{}, a.Shape...)
	outShape[axis] = 1
	out := New(a.DType, outShape...)
	n := out.Len()
	axisSize := a.Shape[axis]
	axisStride := a.Strides[axis]
	for i := 0; i < n; i++ {
		base := unflattenToSourceOffset(i, outShape, a.Strides, axis)
		acc := init
		for k := 0; k < axisSize; k++ {
			acc = fold(acc, a.At64(base+k*axisStride))
		}
		out.Set64(i, acc)
	}
	return out, nil
}

// unflattenToSourceOffset maps a flat index into the (axis-collapsed)
// output shape back to the matching base offset in the source tensor
// (whose strides are given), fixing position 0 along axis.
func unflattenToSourceOffset(flatIdx int, outShape, srcStrides []int, axis int) int {
	coords := make([]int, len(outShape))
	rem := flatIdx
	for d := len(outShape) - 1; d >= 0; d-- {
		coords[d] = rem % outShape[d]
		rem /= outShape[d]
	}
	offset := 0
	for d := range coords {
		if d == axis {
			continue
		}
		offset += coords[d] * srcStrides[d]
	}
	return offset
}

// Sum reduces a along each axis listed in axes, in order, producing a
// tensor whose size is 1 on each reduced axis.
func Sum(a *Tensor, axes []int) (*Tensor, error) {
	cur := a
	for _, ax := range axes {
		next, err := reduceAxis(cur, ax, func(acc, x float64) float64 { return acc + x }, 0)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// SumAll reduces every element of a to a single scalar tensor.
func SumAll(a *Tensor) *Tensor {
	s := 0.0
	n := a.Len()
	for i := 0; i < n; i++ {
		s += a.At64(i)
	}
	return &Tensor{Data: []float64{s}, Shape: []int{1}, Strides: []int{1}, DType: Float64}
}

// Mean reduces a along each axis listed in axes, in order, dividing by
// the number of elements folded into each output position.
func Mean(a *Tensor, axes []int) (*Tensor, error) {
	cur := a
	for _, ax := range axes {
		count := float64(cur.Shape[ax])
		next, err := reduceAxis(cur, ax, func(acc, x float64) float64 { return acc + x }, 0)
		if err != nil {
			return nil, err
		}
		n := next.Len()
		for i := 0; i < n; i++ {
			next.Set64(i, next.At64(i)/count)
		}
		cur = next
	}
	return cur, nil
}
