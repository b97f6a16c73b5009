package multivariate

import (
	"math"

	"github.com/restrictionless/opt/common"
	"github.com/restrictionless/opt/write"
	"gonum.org/v1/gonum/mat"
)

// GradFunc puts the gradient of the objective at x in grad.
type GradFunc func(grad, x []float64)

// HessFunc puts the Hessian of the objective at x in hess, a zeroed
// len(x)×len(x) matrix.
type HessFunc func(hess *mat.Dense, x []float64)

// Step is the state of the optimizer after an iteration.
type Step struct {
	Iteration int
	Loc       []float64 // location after the step
	StepNorm  float64   // Euclidean length of the step
}

// Settings is a structure containing settings for multivariate
// optimizers.
type Settings struct {
	*common.CommonSettings

	// Recorder, if non-nil, is called after every iteration. Loc is a copy
	// owned by the recorder.
	Recorder func(Step)
}

// DefaultSettings returns the default settings for multivariate optimizers.
// The default behavior is to run the optimizer until the step length
// converges, with no display. If it is desired that it end earlier, consider
// changing MaximumIterations, MaximumFunctionEvaluations, and MaximumRuntime
func DefaultSettings() *Settings {
	return &Settings{
		CommonSettings: common.DefaultCommonSettings(),
	}
}

// Helper is a helper struct for optimizers. Not intended for use by
// callers of optimization functions, but exported to aid others who are building
// optimization algorithms
//
// Optimization implementers should call Init() at the beginning of an optimization run
// and should call Status() to check tolerances. At the end of every interation should call
// Iterate()
type Helper struct {
	*common.Common

	step stepStatus

	locCurr []float64

	recorder func(Step)
}

// stepStatus tracks the step length against the step tolerance
type stepStatus struct {
	common.UniToler
}

func (s *stepStatus) Status() common.Status {
	if s.AbsConverged() {
		return common.LocChangeTol
	}
	return common.Continue
}

// NewHelper creates a new multivariate helper and adds itself to the data adders
func NewHelper() *Helper {
	u := &Helper{
		Common: common.NewCommon(),
	}
	u.AddDataAdder(u)
	return u
}

func (u *Helper) AppendWriteData(v []*write.Value) []*write.Value {
	v = append(v, &write.Value{Heading: "Step", Value: u.step.Recent()})
	v = append(v, &write.Value{Heading: "Loc", Value: u.locCurr})
	return v
}

func (u *Helper) Init(s *Settings, initLoc []float64, stepTol float64) error {
	u.locCurr = make([]float64, len(initLoc))
	copy(u.locCurr, initLoc)
	u.recorder = s.Recorder

	// no step has been taken, so the initial value never converges
	u.step.Init(stepTol, math.Inf(1))
	return u.Common.Init(s.CommonSettings)
}

func (u *Helper) Iterate(loc []float64, stepNorm float64, nFunEvals int) error {
	copy(u.locCurr, loc)
	u.step.Add(stepNorm)

	if err := u.Common.Iterate(nFunEvals); err != nil {
		return err
	}
	if u.recorder != nil {
		l := make([]float64, len(loc))
		copy(l, loc)
		u.recorder(Step{Iteration: u.Common.Iterations(), Loc: l, StepNorm: stepNorm})
	}
	return nil
}

func (u *Helper) Status() common.Status {
	return common.CheckStatus(&u.step, u.Common)
}

func (u *Helper) Result(status common.Status) *Result {
	r := &Result{
		CommonResult: u.Common.Result(status),
		Loc:          u.locCurr,
		StepNorm:     u.step.Recent(),
	}
	// Convergence is reported 0-indexed: the iteration whose step met the
	// tolerance is not counted, so a first-step convergence reports zero
	// iterations.
	if status == common.LocChangeTol {
		r.Iterations--
	}
	return r
}

type Result struct {
	*common.CommonResult
	Loc      []float64 // Final location
	StepNorm float64   // Length of the last step taken, +Inf if no step was taken
}
