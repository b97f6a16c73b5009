package univariate

import (
	"github.com/restrictionless/opt/common"
	"github.com/restrictionless/opt/write"
)

// Func is a scalar objective function. It must be finite at every point
// evaluated and is assumed to be unimodal over the searched interval.
type Func func(x float64) float64

// Bracket is the state of a bracketing search after an iteration: the current
// interval and the probe points that were compared to produce it.
type Bracket struct {
	Iteration int
	Lower     float64
	Upper     float64
	Alpha     float64
	Mu        float64
}

// Width returns the length of the interval
func (b Bracket) Width() float64 { return b.Upper - b.Lower }

// Settings is a structure containing settings for univariate
// optimizers.
type Settings struct {
	*common.CommonSettings

	// Recorder, if non-nil, is called with the bracket after every iteration.
	Recorder func(Bracket)
}

// DefaultSettings returns the default settings for univariate optimizers.
// The default behavior is to run the optimizer until the bracket is smaller
// than the uncertainty length without any display. Set DisplayWriters (for
// example to write.Verbose(os.Stdout)) to follow the iterations.
func DefaultSettings() *Settings {
	return &Settings{
		CommonSettings: common.DefaultCommonSettings(),
	}
}

// Helper is a helper struct for bracketing optimizers. Not intended for use by
// callers of optimization functions, but exported to aid others who are building
// optimization algorithms
//
// Optimization implementers should call Init() at the beginning of an optimization run
// and should call Status() to check tolerances. At the end of every interation should call
// Iterate()
type Helper struct {
	*common.Common

	width widthStatus

	lower float64
	upper float64

	recorder func(Bracket)
}

// widthStatus tracks the bracket width against the uncertainty length
type widthStatus struct {
	common.UniToler
	stalled bool
}

func (w *widthStatus) Status() common.Status {
	if w.AbsConverged() {
		return common.BoundsConverged
	}
	if w.stalled {
		return common.BracketStalled
	}
	return common.Continue
}

// NewHelper creates a new univariate helper and adds itself to the data adders
func NewHelper() *Helper {
	u := &Helper{
		Common: common.NewCommon(),
	}
	u.AddDataAdder(u)
	return u
}

func (u *Helper) AppendWriteData(v []*write.Value) []*write.Value {
	v = append(v, &write.Value{Heading: "Lower", Value: u.lower})
	v = append(v, &write.Value{Heading: "Upper", Value: u.upper})
	v = append(v, &write.Value{Heading: "Width", Value: u.upper - u.lower})
	return v
}

func (u *Helper) Init(s *Settings, lower, upper, uncertainty float64) error {
	u.lower = lower
	u.upper = upper
	u.width.stalled = false
	u.recorder = s.Recorder
	u.width.Init(uncertainty, upper-lower)
	return u.Common.Init(s.CommonSettings)
}

func (u *Helper) Iterate(b Bracket, nFunEvals int) error {
	// The bracket must shrink every iteration. If it does not, the interval
	// has reached the floating point resolution of its endpoints.
	if b.Width() >= u.upper-u.lower {
		u.width.stalled = true
	}
	u.lower = b.Lower
	u.upper = b.Upper
	u.width.Add(b.Width())

	if err := u.Common.Iterate(nFunEvals); err != nil {
		return err
	}
	if u.recorder != nil {
		b.Iteration = u.Common.Iterations()
		u.recorder(b)
	}
	return nil
}

func (u *Helper) Status() common.Status {
	return common.CheckStatus(&u.width, u.Common)
}

func (u *Helper) Result(status common.Status) *Result {
	return &Result{
		CommonResult: u.Common.Result(status),
		Lower:        u.lower,
		Upper:        u.upper,
	}
}

type Result struct {
	*common.CommonResult
	Lower float64 // Lower end of the final interval
	Upper float64 // Upper end of the final interval
}

// Width returns the length of the final interval
func (r *Result) Width() float64 { return r.Upper - r.Lower }

// Midpoint returns the center of the final interval, the usual point estimate
// of the minimizer
func (r *Result) Midpoint() float64 { return (r.Lower + r.Upper) / 2 }
