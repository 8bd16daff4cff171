package autograd

import "errors"

// ErrGradientDisabled is returned by Grad when the Variable's calcGrad
// flag is false — it is either a constant or has been detached via
// SetCalcGrad(false).
var ErrGradientDisabled = errors.New("autograd: gradient disabled for this variable")

// ErrGradientNotAvailable is returned by Grad when no gradient has been
// accumulated yet, typically because Backward has not been called on
// anything downstream of this Variable.
var ErrGradientNotAvailable = errors.New("autograd: no gradient has been accumulated yet")
