package univariate

import (
	"errors"
	"fmt"
	"math"

	"github.com/restrictionless/opt/common"
)

// BracketOptimizer represents an interval reduction method for unimodal
// functions.
type BracketOptimizer interface {
	// Init validates the parameters of the method and prepares a run over
	// [lower, upper]. It must not evaluate f.
	Init(f Func, lower, upper, uncertainty float64) error
	// Iterate shrinks the bracket once, returning the new bracket and the
	// number of function evaluations it took
	Iterate() (b Bracket, nFunEvals int, err error)
}

// DichotomicSearch minimizes f over [lower, upper] with the dichotomic method,
// placing two probes epsilon on either side of the midpoint each iteration.
// The returned interval is shorter than uncertainty.
func DichotomicSearch(f Func, lower, upper, epsilon, uncertainty float64, settings *Settings) (*Result, error) {
	return OptimizeBracket(f, lower, upper, uncertainty, settings, NewDichotomic(epsilon))
}

// GoldenSectionSearch minimizes f over [lower, upper] with the golden section
// method. The returned interval is shorter than uncertainty.
func GoldenSectionSearch(f Func, lower, upper, uncertainty float64, settings *Settings) (*Result, error) {
	return OptimizeBracket(f, lower, upper, uncertainty, settings, NewGoldenSection())
}

// OptimizeBracket shrinks [lower, upper] with the optimizer until it is
// shorter than uncertainty. An interval that is already short enough,
// including lower == upper, is returned unchanged after zero iterations.
// It panics if optimizer is nil.
//
// Invalid bounds or parameters return a nil result and an error with status
// common.InvalidBounds. Failures once iterating has started return the
// result so far together with the error.
func OptimizeBracket(f Func, lower, upper, uncertainty float64, settings *Settings, optimizer BracketOptimizer) (*Result, error) {
	if optimizer == nil {
		panic("no optimizer provided")
	}
	if f == nil {
		return nil, errors.New("objective function is nil")
	}
	if settings == nil {
		settings = DefaultSettings()
	}

	if err := checkBounds(lower, upper, uncertainty); err != nil {
		return nil, err
	}
	if err := optimizer.Init(f, lower, upper, uncertainty); err != nil {
		return nil, fmt.Errorf("error initializing: %w", err)
	}

	helper := NewHelper()
	if err := helper.Init(settings, lower, upper, uncertainty); err != nil {
		return nil, fmt.Errorf("error initializing display: %w", err)
	}

	var status common.Status
	for {
		status = helper.Status()
		if status != common.Continue {
			break
		}
		b, nFunEvals, err := optimizer.Iterate()
		if err != nil {
			var failure *common.Failure
			if errors.As(err, &failure) {
				return helper.Result(failure.Status), err
			}
			return helper.Result(common.UserFunctionError), fmt.Errorf("error iterating optimizer: %w", err)
		}
		if err := helper.Iterate(b, nFunEvals); err != nil {
			return helper.Result(helper.Status()), fmt.Errorf("error writing display: %w", err)
		}
	}

	result := helper.Result(status)
	if status.Failed() {
		return result, &common.Failure{Status: status}
	}
	return result, nil
}

func checkBounds(lower, upper, uncertainty float64) error {
	switch {
	case math.IsNaN(lower) || math.IsNaN(upper):
		return common.Fail(common.InvalidBounds, "NaN bound in [%v, %v]", lower, upper)
	case math.IsInf(lower, 0) || math.IsInf(upper, 0):
		return common.Fail(common.InvalidBounds, "infinite bound in [%v, %v]", lower, upper)
	case math.IsInf(upper-lower, 0) || math.IsInf(lower+upper, 0):
		return common.Fail(common.InvalidBounds, "interval [%v, %v] overflows", lower, upper)
	case lower > upper:
		return common.Fail(common.InvalidBounds, "lower bound %v is above upper bound %v", lower, upper)
	case !(uncertainty > 0):
		return common.Fail(common.InvalidBounds, "uncertainty length must be positive, got %v", uncertainty)
	}
	return nil
}
