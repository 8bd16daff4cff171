package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// toDense copies a 2-D tensor t into a gonum matrix. Any other rank,
// including leading batch axes, is rejected with an error.
func toDense(t *Tensor) (*mat.Dense, error) {
	if len(t.Shape) != 2 {
		return nil, fmt.Errorf("tensor: matmul requires 2D operands, got shape %v", t.Shape)
	}
	if t.IsFloat32() {
		data := make([]float64, len(t.Data32))
		for i, v := range t.Data32 {
			data[i] = float64(v)
		}
		return mat.NewDense(t.Shape[0], t.Shape[1], data), nil
	}
	return mat.NewDense(t.Shape[0], t.Shape[1], append([]float64{}, t.Data...)), nil
}

func fromDense(m *mat.Dense) *Tensor {
	r, c := m.Dims()
	out := New(Float64, r, c)
	copy(out.Data, m.RawMatrix().Data)
	// mat.Dense's raw data can have a larger stride than c when the
	// matrix is a view; RawMatrix().Data is only a direct copy target
	// when Stride == c, which holds for matrices we construct ourselves.
	if m.RawMatrix().Stride != c {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				out.Set64(i*c+j, m.At(i, j))
			}
		}
	}
	return out
}

// MatMul computes A*B for 2D tensors A (m x k) and B (k x n).
func MatMul(a, b *Tensor) (*Tensor, error) {
	am, err := toDense(a)
	if err != nil {
		return nil, err
	}
	bm, err := toDense(b)
	if err != nil {
		return nil, err
	}
	if a.Shape[1] != b.Shape[0] {
		return nil, shapeMismatch("matmul", a.Shape, b.Shape)
	}
	var out mat.Dense
	out.Mul(am, bm)
	return fromDense(&out), nil
}

// MatMulTN computes A^T*B for 2D tensors A (k x m) and B (k x n),
// without materializing the transpose of A.
func MatMulTN(a, b *Tensor) (*Tensor, error) {
	am, err := toDense(a)
	if err != nil {
		return nil, err
	}
	bm, err := toDense(b)
	if err != nil {
		return nil, err
	}
	if a.Shape[0] != b.Shape[0] {
		return nil, shapeMismatch("matmul_tn", a.Shape, b.Shape)
	}
	var out mat.Dense
	out.Mul(am.T(), bm)
	return fromDense(&out), nil
}

// MatMulNT computes A*B^T for 2D tensors A (m x k) and B (n x k),
// without materializing the transpose of B.
func MatMulNT(a, b *Tensor) (*Tensor, error) {
	am, err := toDense(a)
	if err != nil {
		return nil, err
	}
	bm, err := toDense(b)
	if err != nil {
		return nil, err
	}
	if a.Shape[1] != b.Shape[1] {
		return nil, shapeMismatch("matmul_nt", a.Shape, b.Shape)
	}
	var out mat.Dense
	out.Mul(am, bm.T())
	return fromDense(&out), nil
}
