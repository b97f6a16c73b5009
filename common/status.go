package common

import (
	"errors"
	"fmt"
)

// Statuser is anything that can decide whether an optimization run should
// stop, returning Continue while it should not
type Statuser interface {
	Status() Status
}

// CheckStatus checks the status of a variadic number of statusers
// and returns the first one that is not Continue
func CheckStatus(cs ...Statuser) Status {
	for _, val := range cs {
		c := val.Status()
		if c != Continue {
			return c
		}
	}
	return Continue
}

// NewStatus is used to get a unique value for Status to avoid any accidental
// collisions. NewStatus is not thread-safe as it is intended to only be used
// during initialization
func NewStatus(str string) Status {
	lastStatus++
	statusStrings[lastStatus] = str
	return Status(lastStatus)
}

var statusStrings map[Status]string

func init() {
	statusStrings = make(map[Status]string)
	statusStrings[Continue] = "Continue"
	statusStrings[LocChangeTol] = "LocChangeTol"
	statusStrings[BoundsConverged] = "BoundsConverged"

	statusStrings[UserFunctionError] = "ErrorInUserFunction"
	statusStrings[InvalidBounds] = "InvalidBounds"
	statusStrings[SingularHessian] = "SingularHessian"
	statusStrings[BracketStalled] = "BracketStalled"
	statusStrings[MaximumIterations] = "MaximumIterations"
	statusStrings[MaximumFunctionEvaluations] = "MaximumFunctionEvaluations"
	statusStrings[MaximumRuntime] = "MaximumRuntimeElapsed"
}

// Status is a type for expressing if the optimizer has finished or not
// Zero signifies no convergence or error so the optimizer should continue.
// Positive values indicate successful convergence
// negative values express failure for some way
//
// If a custom status value is desired, NewStatus should be called. NewStatus
// is not thread-safe as it is intended to only be used during initialization
type Status int

func (s Status) String() string {
	str, ok := statusStrings[s]
	if !ok {
		return "UnregisteredStatus"
	}
	return str
}

// Failed returns true if the status expresses a failed run
func (s Status) Failed() bool { return s < 0 }

const (
	Continue Status = iota
	LocChangeTol
	BoundsConverged
)

const (
	_                        = iota
	UserFunctionError Status = -1 * iota
	InvalidBounds
	SingularHessian
	BracketStalled
	MaximumIterations
	MaximumFunctionEvaluations
	MaximumRuntime
)

var lastStatus Status = 256

// Failure is the error returned when an optimizer terminates with a
// failing status.
type Failure struct {
	Status
	Msg string
}

func (f *Failure) Error() string {
	if f.Msg == "" {
		return fmt.Sprintf("optimization failed: %v", f.Status)
	}
	return fmt.Sprintf("optimization failed: %v: %s", f.Status, f.Msg)
}

// Fail returns a Failure with the given status and a formatted message
func Fail(s Status, format string, args ...interface{}) error {
	return &Failure{Status: s, Msg: fmt.Sprintf(format, args...)}
}

// IsStatus reports whether err is (or wraps) a Failure with status s
func IsStatus(err error, s Status) bool {
	var f *Failure
	if !errors.As(err, &f) {
		return false
	}
	return f.Status == s
}
