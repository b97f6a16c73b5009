package common

import "math"

// UniToler is a type for checking the convergence of a scalar quantity (a
// bracket width, a step norm) against an absolute tolerance. The quantity has
// converged once it is strictly below the tolerance.
type UniToler struct {
	absTol float64
	recent float64
}

// Init initializes the UniToler with the tolerance and the value before the
// first iteration. A NaN tolerance never converges.
func (t *UniToler) Init(absTol, initVal float64) {
	t.absTol = absTol
	t.recent = initVal
}

// Add adds a new value to the toler (after an iteration)
func (t *UniToler) Add(v float64) {
	t.recent = v
}

// Recent returns the most recently added value
func (t *UniToler) Recent() float64 { return t.recent }

// AbsConverged returns true if the most recent value is below the absolute tolerance
func (t *UniToler) AbsConverged() bool {
	if math.IsNaN(t.absTol) {
		return false
	}
	return t.recent < t.absTol
}
