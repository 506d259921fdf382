package simulate

import "errors"

// ErrValueDecreased is returned by Run (with Config.FailFast) when a step
// leaves the pool's normalized value per pool token lower than it was
// before the step.
var ErrValueDecreased = errors.New("simulate: pool value decreased")
