package tensor

// Eval forces materialization of any lazily-constructed expression tree
// behind t. This backend builds every result eagerly (Go has no deferred
// GPU kernel queue to flush), so Eval is a no-op; it exists so that
// pkg/autograd's gradient-summation step, which calls it to bound a
// lazy backend's expression tree per spec, has something to call
// regardless of which backend is wired in.
func (t *Tensor) Eval() *Tensor {
	return t
}
