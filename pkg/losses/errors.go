package losses

import "errors"

// ErrRequiresTargets is returned by Call when it is given a prediction
// but no target: every loss in this package needs both a prediction and
// a target to compute anything, unlike an ordinary Module.
var ErrRequiresTargets = errors.New("losses: loss module requires both inputs and targets")
