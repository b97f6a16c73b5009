package multivariate

import (
	"errors"
	"fmt"
	"math"

	"github.com/restrictionless/opt/common"
)

// HessOptimizer is an optimizer which uses the gradient and the Hessian
// of the objective.
type HessOptimizer interface {
	Init(grad GradFunc, hess HessFunc, initLoc []float64) error
	// Iterate takes one step, putting the new location in loc, and returns
	// the length of the step
	Iterate(loc []float64) (stepNorm float64, nFunEvals int, err error)
}

// NewtonSearch runs Newton's method from x0 until two consecutive iterates
// are closer than epsilon, taking at most maxIter steps.
//
// On success the result holds the converged point and the 0-indexed iteration
// at which the step tolerance was met. A singular Hessian fails immediately
// with common.SingularHessian; running out of iterations fails with
// common.MaximumIterations. Both failures return the result so far.
func NewtonSearch(grad GradFunc, hess HessFunc, x0 []float64, epsilon float64, maxIter int, settings *Settings) (*Result, error) {
	if maxIter < 1 {
		return nil, common.Fail(common.InvalidBounds, "maximum iterations must be at least 1, got %d", maxIter)
	}
	if settings == nil {
		settings = DefaultSettings()
	}
	s := *settings
	cs := *common.DefaultCommonSettings()
	if s.CommonSettings != nil {
		cs = *s.CommonSettings
	}
	cs.MaximumIterations = maxIter
	s.CommonSettings = &cs
	return OptimizeHess(grad, hess, x0, epsilon, &s, NewNewton())
}

// OptimizeHess minimizes with a Hessian based optimizer until the step length
// is below stepTol or a limit in settings is reached. It panics if optimizer
// is nil.
//
// Invalid parameters return a nil result and an error with status
// common.InvalidBounds. Failures once iterating has started return the
// result so far together with the error.
func OptimizeHess(grad GradFunc, hess HessFunc, initLoc []float64, stepTol float64, settings *Settings, optimizer HessOptimizer) (*Result, error) {
	if optimizer == nil {
		panic("no optimizer provided")
	}
	if settings == nil {
		settings = DefaultSettings()
	}
	if grad == nil || hess == nil {
		return nil, errors.New("gradient or hessian function is nil")
	}

	if len(initLoc) == 0 {
		return nil, common.Fail(common.InvalidBounds, "empty initial location")
	}
	for _, v := range initLoc {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, common.Fail(common.InvalidBounds, "non-finite initial location %v", initLoc)
		}
	}
	if !(stepTol > 0) {
		return nil, common.Fail(common.InvalidBounds, "step tolerance must be positive, got %v", stepTol)
	}

	if err := optimizer.Init(grad, hess, initLoc); err != nil {
		return nil, fmt.Errorf("error initializing: %w", err)
	}
	helper := NewHelper()
	if err := helper.Init(settings, initLoc, stepTol); err != nil {
		return nil, fmt.Errorf("error initializing display: %w", err)
	}

	loc := make([]float64, len(initLoc))

	var status common.Status
	for {
		status = helper.Status()
		if status != common.Continue {
			break
		}
		stepNorm, nFunEvals, err := optimizer.Iterate(loc)
		if err != nil {
			var failure *common.Failure
			if errors.As(err, &failure) {
				return helper.Result(failure.Status), err
			}
			return helper.Result(common.UserFunctionError), fmt.Errorf("error iterating optimizer: %w", err)
		}
		if err := helper.Iterate(loc, stepNorm, nFunEvals); err != nil {
			return helper.Result(helper.Status()), fmt.Errorf("error writing display: %w", err)
		}
	}

	result := helper.Result(status)
	if status.Failed() {
		return result, &common.Failure{Status: status}
	}
	return result, nil
}
