package univariate

import (
	"math"

	"github.com/restrictionless/opt/common"
)

// Dichotomic performs a dichotomic search. Every iteration compares f at two
// probes placed Epsilon to the left and right of the midpoint and keeps the
// part of the interval that must contain the minimum. Each iteration costs two
// function evaluations and roughly halves the interval.
//
// The interval can never become shorter than 2*Epsilon, so Epsilon must be
// less than half the uncertainty length. If c-Epsilon and c+Epsilon do not
// round to distinct points strictly inside the bracket, the search fails with
// common.BracketStalled.
type Dichotomic struct {
	Epsilon float64 // Distance of each probe from the midpoint

	f     Func
	lower float64
	upper float64
}

func NewDichotomic(epsilon float64) *Dichotomic {
	return &Dichotomic{
		Epsilon: epsilon,
	}
}

func (d *Dichotomic) Init(f Func, lower, upper, uncertainty float64) error {
	if !(d.Epsilon > 0) || math.IsInf(d.Epsilon, 1) {
		return common.Fail(common.InvalidBounds, "dichotomic: epsilon must be positive and finite, got %v", d.Epsilon)
	}
	if 2*d.Epsilon >= uncertainty {
		return common.Fail(common.InvalidBounds,
			"dichotomic: probe spacing 2*epsilon = %v must be below the uncertainty length %v", 2*d.Epsilon, uncertainty)
	}
	d.f = f
	d.lower = lower
	d.upper = upper
	return nil
}

func (d *Dichotomic) Iterate() (b Bracket, nFunEvals int, err error) {
	c := (d.lower + d.upper) / 2
	alpha := c - d.Epsilon
	mu := c + d.Epsilon
	// Near large endpoints Epsilon can be below the spacing of floats, so
	// the rounded points may coincide or leave the bracket.
	if !(d.lower < alpha && alpha < mu && mu < d.upper) {
		return b, 0, common.Fail(common.BracketStalled,
			"dichotomic: points %v and %v around %v are not inside [%v, %v] at this resolution", alpha, mu, c, d.lower, d.upper)
	}

	fAlpha := d.f(alpha)
	fMu := d.f(mu)
	if math.IsNaN(fAlpha) || math.IsNaN(fMu) {
		return b, 2, common.Fail(common.UserFunctionError, "dichotomic: NaN objective near x = %v", c)
	}

	// Ties move the lower bound
	if fAlpha < fMu {
		d.upper = mu
	} else {
		d.lower = alpha
	}
	return Bracket{Lower: d.lower, Upper: d.upper, Alpha: alpha, Mu: mu}, 2, nil
}
