package tensor

import "fmt"

// Reshape returns a view of a's data under a new shape. The element
// count of newShape must match a's.
func Reshape(a *Tensor, newShape []int) (*Tensor, error) {
	if size(newShape) != a.Len() {
		return nil, fmt.Errorf("tensor: reshape %v -> %v: element count mismatch", a.Shape, newShape)
	}
	out := &Tensor{
		Shape:   append([]int{}, newShape...),
		Strides: rowMajorStrides(newShape),
		DType:   a.DType,
	}
	if a.IsFloat32() {
		out.Data32 = a.Data32
	} else {
		out.Data = a.Data
	}
	return out, nil
}

// Flatten collapses a to a single axis of length equal to its element count.
func Flatten(a *Tensor) *Tensor {
	out, _ := Reshape(a, []int{a.Len()})
	return out
}

// Transpose swaps the two axes of a 2-D tensor.
func Transpose(a *Tensor) (*Tensor, error) {
	if len(a.Shape) != 2 {
		return nil, fmt.Errorf("tensor: transpose requires a 2D tensor, got rank %d", len(a.Shape))
	}
	rows, cols := a.Shape[0], a.Shape[1]
	out := New(a.DType, cols, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set64(j*rows+i, a.At64(i*cols+j))
		}
	}
	return out, nil
}

// padShape left-pads shape with 1s until it has the given rank.
func padShape(shape []int, rank int) []int {
	if len(shape) >= rank {
		return append([]int{}, shape...)
	}
	out := make([]int, rank)
	offset := rank - len(shape)
	for i := 0; i < offset; i++ {
		out[i] = 1
	}
	copy(out[offset:], shape)
	return out
}

// Tile replicates a per-axis by the given integer factors.
func Tile(a *Tensor, repeats []int) (*Tensor, error) {
	if len(repeats) != len(a.Shape) {
		return nil, fmt.Errorf("tensor: tile repeats %v must match rank of shape %v", repeats, a.Shape)
	}
	outShape := make([]int, len(a.Shape))
	for i, r := range repeats {
		outShape[i] = a.Shape[i] * r
	}
	out := New(a.DType, outShape...)
	outStrides := out.Strides
	n := out.Len()
	for i := 0; i < n; i++ {
		srcOffset := 0
		rem := i
		for d := 0; d < len(outShape); d++ {
			coord := rem / outStrides[d]
			rem = rem % outStrides[d]
			srcCoord := coord % a.Shape[d]
			srcOffset += srcCoord * a.Strides[d]
		}
		out.Set64(i, a.At64(srcOffset))
	}
	return out, nil
}

// TileAs replicates input so that each of its dimensions matches the
// corresponding dimension of refShape. The per-axis factor is computed
// by integer division; divisibility is not checked (matching the
// upstream array backend's contract).
func TileAs(input *Tensor, refShape []int) (*Tensor, error) {
	rank := len(refShape)
	if len(input.Shape) > rank {
		rank = len(input.Shape)
	}
	inShape := padShape(input.Shape, rank)
	rShape := padShape(refShape, rank)

	reshaped, err := Reshape(input, inShape)
	if err != nil {
		return nil, err
	}
	repeats := make([]int, rank)
	for i := range repeats {
		repeats[i] = rShape[i] / inShape[i]
	}
	return Tile(reshaped, repeats)
}

// BroadcastShape computes the common shape two operand shapes tile up
// to: the shorter is left-padded with 1s, then each axis takes the
// larger of the two sizes. It does not validate that the smaller size
// divides the larger, matching TileAs's permissive contract.
func BroadcastShape(a, b []int) []int {
	rank := len(a)
	if len(b) > rank {
		rank = len(b)
	}
	pa, pb := padShape(a, rank), padShape(b, rank)
	out := make([]int, rank)
	for i := 0; i < rank; i++ {
		if pa[i] > pb[i] {
			out[i] = pa[i]
		} else {
			out[i] = pb[i]
		}
	}
	return out
}

// SumAs reduces input along every axis whose size differs from the
// corresponding axis of refShape, collapsing each such axis to size 1,
// then reshapes the result to refShape.
func SumAs(input *Tensor, refShape []int) (*Tensor, error) {
	rank := len(refShape)
	if len(input.Shape) > rank {
		rank = len(input.Shape)
	}
	inShape := padShape(input.Shape, rank)
	rShape := padShape(refShape, rank)

	reshaped, err := Reshape(input, inShape)
	if err != nil {
		return nil, err
	}

	var axes []int
	for i := 0; i < rank; i++ {
		if inShape[i] != rShape[i] {
			axes = append(axes, i)
		}
	}
	summed, err := Sum(reshaped, axes)
	if err != nil {
		return nil, err
	}
	return Reshape(summed, refShape)
}
