package module

import "github.com/wrenford/gnn/pkg/autograd"

// Sequential chains a list of modules, feeding each one's output into
// the next. Its own parameter list is the concatenation of its
// children's, gathered at construction time and extended by Add.
type Sequential struct {
	Base
	modules []Module
}

// NewSequential builds a Sequential from an ordered list of modules.
func NewSequential(modules ...Module) *Sequential {
	s := &Sequential{modules: modules}
	var params []autograd.Variable
	for _, m := range modules {
		params = append(params, m.Parameters()...)
	}
	s.SetParams(params)
	return s
}

// Add appends a module to the chain and folds its parameters in.
func (s *Sequential) Add(m Module) {
	s.modules = append(s.modules, m)
	s.SetParams(append(s.Parameters(), m.Parameters()...))
}

// Get returns the module at position id.
func (s *Sequential) Get(id int) Module {
	return s.modules[id]
}

// Modules returns the chain's modules in order.
func (s *Sequential) Modules() []Module {
	return s.modules
}

// Train puts every child module, and Sequential's own parameter set,
// into training mode.
func (s *Sequential) Train() {
	s.Base.Train()
	for _, m := range s.modules {
		m.Train()
	}
}

// Eval puts every child module into evaluation mode.
func (s *Sequential) Eval() {
	s.Base.Eval()
	for _, m := range s.modules {
		m.Eval()
	}
}

// Forward feeds input through each module in order.
func (s *Sequential) Forward(input autograd.Variable) autograd.Variable {
	out := input
	for _, m := range s.modules {
		out = m.Forward(out)
	}
	return out
}
