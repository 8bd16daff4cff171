// Package initializers provides the parameter-initialization schemes
// used by layers at construction time.
package initializers

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/wrenford/gnn/pkg/autograd"
	"github.com/wrenford/gnn/pkg/tensor"
)

// LeCunNormal draws a (rows, cols) weight matrix from a zero-mean
// Gaussian with standard deviation 1/sqrt(fan_in), where fan_in is cols
// — the convention used for a weight matrix applied as W·x. The result
// is returned as a trainable leaf Variable.
func LeCunNormal(rows, cols int, src rand.Source) autograd.Variable {
	stddev := 1.0
	if cols > 0 {
		stddev = 1.0 / math.Sqrt(float64(cols))
	}
	data := tensor.Normal(0, stddev, src, rows, cols)
	return autograd.NewLeaf(data, true)
}

// Constant fills a (rows, cols) Variable with value, as a trainable leaf.
func Constant(value float64, rows, cols int) autograd.Variable {
	return autograd.NewLeaf(tensor.Full(value, rows, cols), true)
}
