package univariate

import (
	"math"

	"github.com/restrictionless/opt/common"
)

const (
	// ratio is the golden section (√5-1)/2. It is the only ratio for which the
	// surviving probe of an iteration lands exactly on a probe of the next.
	ratio  = math.Phi - 1
	resphi = 2 - math.Phi // 1 - ratio
)

// GoldenSection performs a golden section search over a bracketing interval.
// The probes divide the interval in the golden ratio, so after each
// comparison one of them is reused and only one new function evaluation is
// needed per iteration (two on the first).
type GoldenSection struct {
	f Func

	lower float64
	upper float64

	alpha  float64
	mu     float64
	fAlpha float64
	fMu    float64

	// probes that moved and have not been evaluated yet
	evalAlpha bool
	evalMu    bool
}

func NewGoldenSection() *GoldenSection {
	return &GoldenSection{}
}

func (g *GoldenSection) Init(f Func, lower, upper, uncertainty float64) error {
	g.f = f
	g.lower = lower
	g.upper = upper

	g.alpha = lower + resphi*(upper-lower)
	g.mu = lower + ratio*(upper-lower)
	g.evalAlpha = true
	g.evalMu = true
	return nil
}

func (g *GoldenSection) Iterate() (b Bracket, nFunEvals int, err error) {
	if g.evalAlpha {
		g.fAlpha = g.f(g.alpha)
		g.evalAlpha = false
		nFunEvals++
	}
	if g.evalMu {
		g.fMu = g.f(g.mu)
		g.evalMu = false
		nFunEvals++
	}
	if math.IsNaN(g.fAlpha) || math.IsNaN(g.fMu) {
		return b, nFunEvals, common.Fail(common.UserFunctionError, "golden section: NaN objective in [%v, %v]", g.alpha, g.mu)
	}

	b.Alpha = g.alpha
	b.Mu = g.mu
	if g.fAlpha <= g.fMu {
		// minimum is in [lower, mu]; alpha becomes the new mu
		g.upper = g.mu
		g.mu, g.fMu = g.alpha, g.fAlpha
		g.alpha = g.lower + resphi*(g.upper-g.lower)
		g.evalAlpha = true
	} else {
		// minimum is in [alpha, upper]; mu becomes the new alpha
		g.lower = g.alpha
		g.alpha, g.fAlpha = g.mu, g.fMu
		g.mu = g.lower + ratio*(g.upper-g.lower)
		g.evalMu = true
	}
	b.Lower = g.lower
	b.Upper = g.upper
	return b, nFunEvals, nil
}
