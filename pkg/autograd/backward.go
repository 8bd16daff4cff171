package autograd

import "github.com/wrenford/gnn/pkg/tensor"

// buildDAG performs a post-order depth-first traversal from root,
// visiting each input before the node that consumes it and deduplicating
// by record identity so a Variable reachable through multiple paths
// appears exactly once, at the position where its first visit completes. The result is
// a valid reverse-topological order when walked back to front: every
// consumer appears after all of its inputs.
func buildDAG(root Variable) []Variable {
	var order []Variable
	visited := make(map[*record]bool)

	var visit func(v Variable)
	visit = func(v Variable) {
		if v.rec == nil || visited[v.id()] {
			return
		}
		visited[v.id()] = true
		for _, in := range v.Inputs() {
			visit(in)
		}
		order = append(order, v)
	}
	visit(root)
	return order
}

// Backward runs reverse-mode differentiation from root, seeding it with
// seed as the upstream gradient and walking the topological order built
// by buildDAG back to front so every node receives all of its
// contributions before it propagates to its own inputs. retain controls
// whether the computed gradients are themselves left differentiable
// (calcGrad=true), enabling a second Backward pass over them.
func Backward(root Variable, seed Variable, retain bool) {
	if !root.CalcGrad() {
		return
	}
	root.AddGrad(seed)

	order := buildDAG(root)
	for i := len(order) - 1; i >= 0; i-- {
		order[i].calcGradInputs(retain)
	}
}

// BackwardScalar seeds Backward with an all-ones Variable shaped like
// root's own data, matching the common case of differentiating a scalar
// loss. It does not itself require root to actually be scalar-shaped:
// per the permissive design carried over from the original engine, a
// non-scalar root is seeded with ones across every element rather than
// rejected outright.
func BackwardScalar(root Variable, retain bool) {
	seed := NoGrad(tensor.Ones(root.Data().Shape...))
	Backward(root, seed, retain)
}
