package tensor

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform returns a Float64 tensor of the given shape whose elements are
// drawn i.i.d. from the uniform distribution on [low, high).
func Uniform(low, high float64, src rand.Source, shape ...int) *Tensor {
	dist := distuv.Uniform{Min: low, Max: high, Src: src}
	t := New(Float64, shape...)
	for i := range t.Data {
		t.Data[i] = dist.Rand()
	}
	return t
}

// Normal returns a Float64 tensor of the given shape whose elements are
// drawn i.i.d. from a Gaussian with the given mean and standard deviation.
func Normal(mean, stddev float64, src rand.Source, shape ...int) *Tensor {
	dist := distuv.Normal{Mu: mean, Sigma: stddev, Src: src}
	t := New(Float64, shape...)
	for i := range t.Data {
		t.Data[i] = dist.Rand()
	}
	return t
}
