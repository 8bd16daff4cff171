package tensor

import "math"

// elementwise applies f to corresponding elements of a and b into a new
// tensor of the same shape. a and b must have identical shapes; the
// caller (pkg/autograd) is responsible for broadcasting via TileAs first.
func elementwise(op string, a, b *Tensor, f func(x, y float64) float64) (*Tensor, error) {
	if !ShapesEqual(a.Shape, b.Shape) {
		return nil, shapeMismatch(op, a.Shape, b.Shape)
	}
	out := New(a.DType, a.Shape...)
	n := a.Len()
	for i := 0; i < n; i++ {
		out.Set64(i, f(a.At64(i), b.At64(i)))
	}
	return out, nil
}

// Add computes a+b elementwise.
func Add(a, b *Tensor) (*Tensor, error) {
	return elementwise("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub computes a-b elementwise.
func Sub(a, b *Tensor) (*Tensor, error) {
	return elementwise("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul computes a*b elementwise (Hadamard product).
func Mul(a, b *Tensor) (*Tensor, error) {
	return elementwise("mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div computes a/b elementwise.
func Div(a, b *Tensor) (*Tensor, error) {
	return elementwise("div", a, b, func(x, y float64) float64 { return x / y })
}

// Greater returns a mask tensor: 1 where a[i] > b[i], else 0.
func Greater(a, b *Tensor) (*Tensor, error) {
	return elementwise("greater", a, b, func(x, y float64) float64 {
		if x > y {
			return 1
		}
		return 0
	})
}

// Less returns a mask tensor: 1 where a[i] < b[i], else 0.
func Less(a, b *Tensor) (*Tensor, error) {
	return elementwise("less", a, b, func(x, y float64) float64 {
		if x < y {
			return 1
		}
		return 0
	})
}

// GreaterEqual returns a mask tensor: 1 where a[i] >= b[i], else 0.
func GreaterEqual(a, b *Tensor) (*Tensor, error) {
	return elementwise("greater_equal", a, b, func(x, y float64) float64 {
		if x >= y {
			return 1
		}
		return 0
	})
}

// LessEqual returns a mask tensor: 1 where a[i] <= b[i], else 0.
func LessEqual(a, b *Tensor) (*Tensor, error) {
	return elementwise("less_equal", a, b, func(x, y float64) float64 {
		if x <= y {
			return 1
		}
		return 0
	})
}

// MaxElementwise returns the elementwise maximum of a and b.
func MaxElementwise(a, b *Tensor) (*Tensor, error) {
	return elementwise("max", a, b, math.Max)
}

// MinElementwise returns the elementwise minimum of a and b.
func MinElementwise(a, b *Tensor) (*Tensor, error) {
	return elementwise("min", a, b, math.Min)
}

// Not computes logical negation of a mask tensor: 0 -> 1, nonzero -> 0.
func Not(a *Tensor) *Tensor {
	out := New(a.DType, a.Shape...)
	n := a.Len()
	for i := 0; i < n; i++ {
		if a.At64(i) == 0 {
			out.Set64(i, 1)
		} else {
			out.Set64(i, 0)
		}
	}
	return out
}

func apply(a *Tensor, f func(float64) float64) *Tensor {
	out := New(a.DType, a.Shape...)
	n := a.Len()
	for i := 0; i < n; i++ {
		out.Set64(i, f(a.At64(i)))
	}
	return out
}

// Neg computes -a elementwise.
func Neg(a *Tensor) *Tensor { return apply(a, func(x float64) float64 { return -x }) }

// Reciprocal computes 1/a elementwise.
func Reciprocal(a *Tensor) *Tensor { return apply(a, func(x float64) float64 { return 1 / x }) }

// Exp computes e^a elementwise.
func Exp(a *Tensor) *Tensor { return apply(a, math.Exp) }

// Log computes ln(a) elementwise.
func Log(a *Tensor) *Tensor { return apply(a, math.Log) }

// Sin computes sin(a) elementwise.
func Sin(a *Tensor) *Tensor { return apply(a, math.Sin) }

// Cos computes cos(a) elementwise.
func Cos(a *Tensor) *Tensor { return apply(a, math.Cos) }

// TanhElem computes tanh(a) elementwise.
func TanhElem(a *Tensor) *Tensor { return apply(a, math.Tanh) }

// Sigmoid computes 1/(1+e^-a) elementwise.
func Sigmoid(a *Tensor) *Tensor {
	return apply(a, func(x float64) float64 { return 1 / (1 + math.Exp(-x)) })
}

// Abs computes |a| elementwise.
func Abs(a *Tensor) *Tensor { return apply(a, math.Abs) }

// Signbit returns a mask tensor: 1 where a[i] < 0, else 0 (the sign bit).
func Signbit(a *Tensor) *Tensor {
	return apply(a, func(x float64) float64 {
		if x < 0 {
			return 1
		}
		return 0
	})
}

// AddScalar adds the scalar s to every element of a.
func AddScalar(a *Tensor, s float64) *Tensor {
	return apply(a, func(x float64) float64 { return x + s })
}

// MulScalar multiplies every element of a by the scalar s.
func MulScalar(a *Tensor, s float64) *Tensor {
	return apply(a, func(x float64) float64 { return x * s })
}
