package optimizers

import (
	"math"

	"github.com/wrenford/gnn/pkg/autograd"
	"github.com/wrenford/gnn/pkg/tensor"
)

type adamState struct {
	m, v *tensor.Tensor
	t    int
}

// Adam implements the Adam update rule (Kingma & Ba), with per-parameter
// first and second moment estimates keyed by the parameter Variable's
// own handle, mirroring Momentum's bookkeeping.
type Adam struct {
	lr      float64
	beta1   float64
	beta2   float64
	epsilon float64
	state   map[autograd.Variable]*adamState
}

// NewAdam builds an Adam optimizer with the given learning rate and the
// standard beta1=0.9, beta2=0.999, epsilon=1e-8 defaults.
func NewAdam(lr float64) *Adam {
	return &Adam{
		lr:      lr,
		beta1:   0.9,
		beta2:   0.999,
		epsilon: 1e-8,
		state:   make(map[autograd.Variable]*adamState),
	}
}

func (a *Adam) SetLearningRate(lr float64) { a.lr = lr }

func (a *Adam) ZeroGrad(params []autograd.Variable) { ZeroGrad(params) }

func (a *Adam) Step(params []autograd.Variable) {
	for _, p := range params {
		g, ok := gradOrSkip(p)
		if !ok {
			continue
		}
		st, seen := a.state[p]
		if !seen {
			st = &adamState{m: tensor.Zeros(p.Data().Shape...), v: tensor.Zeros(p.Data().Shape...)}
			a.state[p] = st
		}
		st.t++

		gm := tensor.MulScalar(g.Data(), 1-a.beta1)
		mScaled := tensor.MulScalar(st.m, a.beta1)
		newM, err := tensor.Add(mScaled, gm)
		if err != nil {
			panic(err)
		}
		st.m = newM

		gSq, err := tensor.Mul(g.Data(), g.Data())
		if err != nil {
			panic(err)
		}
		gv := tensor.MulScalar(gSq, 1-a.beta2)
		vScaled := tensor.MulScalar(st.v, a.beta2)
		newV, err := tensor.Add(vScaled, gv)
		if err != nil {
			panic(err)
		}
		st.v = newV

		biasCorr1 := 1 - math.Pow(a.beta1, float64(st.t))
		biasCorr2 := 1 - math.Pow(a.beta2, float64(st.t))
		mHat := tensor.MulScalar(st.m, 1/biasCorr1)
		vHat := tensor.MulScalar(st.v, 1/biasCorr2)

		sqrtV := elementwiseSqrt(vHat)
		denom := tensor.AddScalar(sqrtV, a.epsilon)

		step, err := tensor.Div(mHat, denom)
		if err != nil {
			panic(err)
		}
		step = tensor.MulScalar(step, a.lr)

		newData, err := tensor.Sub(p.Data(), step)
		if err != nil {
			panic(err)
		}
		p.SetData(newData)
	}
}

func elementwiseSqrt(t *tensor.Tensor) *tensor.Tensor {
	out := tensor.Zeros(t.Shape...)
	for i := 0; i < t.Len(); i++ {
		out.Set64(i, math.Sqrt(t.At64(i)))
	}
	return out
}
