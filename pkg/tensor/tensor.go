// Package tensor implements the dense n-dimensional array backend that
// pkg/autograd treats as an opaque collaborator: shape/dtype-aware
// storage, elementwise and reduction kernels, broadcasting helpers and
// matrix multiplication. Up to 4 dimensions are supported, row-major
// (C-style) throughout.
package tensor

import "fmt"

// MaxDims is the highest rank this backend supports.
const MaxDims = 4

// Tensor is a dense n-dimensional array. Data holds the elements in
// row-major order; Strides gives the element stride for each axis, so
// transposed views and slicing could be added without copying (not
// exercised by this package, but kept for the shape it gives Reshape).
type Tensor struct {
	Data    []float64
	Data32  []float32
	Shape   []int
	Strides []int
	DType   DType
}

// IsFloat32 reports whether t stores its elements in Data32 rather than Data.
func (t *Tensor) IsFloat32() bool {
	return t.DType == Float32
}

// Len returns the number of elements in the tensor.
func (t *Tensor) Len() int {
	if t.IsFloat32() {
		return len(t.Data32)
	}
	return len(t.Data)
}

// NDims returns the rank of the tensor.
func (t *Tensor) NDims() int {
	return len(t.Shape)
}

// At64 returns element i as a float64 regardless of the storage dtype.
func (t *Tensor) At64(i int) float64 {
	if t.IsFloat32() {
		return float64(t.Data32[i])
	}
	return t.Data[i]
}

// Set64 stores v at element i, converting to the tensor's dtype.
func (t *Tensor) Set64(i int, v float64) {
	if t.IsFloat32() {
		t.Data32[i] = float32(v)
		return
	}
	t.Data[i] = v
}

// rowMajorStrides computes the C-style strides for shape.
func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}

func size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// New allocates a zero-filled tensor of the given shape and dtype.
func New(dtype DType, shape ...int) *Tensor {
	n := size(shape)
	t := &Tensor{
		Shape:   append([]int{}, shape...),
		Strides: rowMajorStrides(shape),
		DType:   dtype,
	}
	if dtype == Float32 {
		t.Data32 = make([]float32, n)
	} else {
		t.Data = make([]float64, n)
	}
	return t
}

// Zeros allocates a Float64 tensor of the given shape, filled with zero.
func Zeros(shape ...int) *Tensor {
	return New(Float64, shape...)
}

// Ones allocates a Float64 tensor of the given shape, filled with one.
func Ones(shape ...int) *Tensor {
	t := New(Float64, shape...)
	for i := range t.Data {
		t.Data[i] = 1
	}
	return t
}

// Full allocates a Float64 tensor of the given shape, filled with value.
func Full(value float64, shape ...int) *Tensor {
	t := New(Float64, shape...)
	for i := range t.Data {
		t.Data[i] = value
	}
	return t
}

// FromData wraps an existing flat float64 buffer as a tensor of shape.
// It returns an error if the buffer length does not match the shape's size.
func FromData(data []float64, shape ...int) (*Tensor, error) {
	if len(data) != size(shape) {
		return nil, fmt.Errorf("tensor: data has %d elements, shape %v wants %d", len(data), shape, size(shape))
	}
	return &Tensor{
		Data:    data,
		Shape:   append([]int{}, shape...),
		Strides: rowMajorStrides(shape),
		DType:   Float64,
	}, nil
}

// Clone returns a deep copy of t.
func (t *Tensor) Clone() *Tensor {
	out := &Tensor{
		Shape:   append([]int{}, t.Shape...),
		Strides: append([]int{}, t.Strides...),
		DType:   t.DType,
	}
	if t.IsFloat32() {
		out.Data32 = append([]float32{}, t.Data32...)
	} else {
		out.Data = append([]float64{}, t.Data...)
	}
	return out
}

// ShapesEqual reports whether a and b name the same rank and per-axis sizes.
func ShapesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(shape=%v, dtype=%s)", t.Shape, t.DType)
}
