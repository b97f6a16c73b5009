package multivariate

import (
	"errors"
	"math"

	"github.com/restrictionless/opt/common"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Newton is Newton's method for finding a stationary point of the objective.
// Each iteration solves the local quadratic model exactly:
//
//	x_{n+1} = x_n - H(x_n)^{-1} ∇f(x_n)
//
// There is no line search or step control, so the method converges only
// from starting points where the quadratic model is good, and it may find
// maxima or saddle points as readily as minima.
type Newton struct {
	grad GradFunc
	hess HessFunc

	currLoc  []float64
	currGrad []float64
}

func NewNewton() *Newton {
	return &Newton{}
}

func (n *Newton) Init(grad GradFunc, hess HessFunc, initLoc []float64) error {
	n.grad = grad
	n.hess = hess

	n.currLoc = make([]float64, len(initLoc))
	copy(n.currLoc, initLoc)
	n.currGrad = make([]float64, len(initLoc))
	return nil
}

func (n *Newton) Iterate(loc []float64) (stepNorm float64, nFunEvals int, err error) {
	dim := len(n.currLoc)
	if len(loc) != dim {
		panic("dimension mismatch")
	}

	// The Hessian and its inverse are allocated fresh every iteration.
	hess := mat.NewDense(dim, dim, nil)
	n.hess(hess, n.currLoc)
	nFunEvals++
	if floats.HasNaN(hess.RawMatrix().Data) {
		return 0, nFunEvals, common.Fail(common.UserFunctionError, "newton: NaN in Hessian at %v", n.currLoc)
	}

	var inv mat.Dense
	if err := inv.Inverse(hess); err != nil {
		// An ill-conditioned but non-singular Hessian still yields an
		// inverse, which is used as is.
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return 0, nFunEvals, common.Fail(common.SingularHessian, "newton: Hessian has no inverse at %v", n.currLoc)
		}
	}
	for _, v := range inv.RawMatrix().Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, nFunEvals, common.Fail(common.SingularHessian, "newton: Hessian has no inverse at %v", n.currLoc)
		}
	}

	for i := range n.currGrad {
		n.currGrad[i] = 0
	}
	n.grad(n.currGrad, n.currLoc)
	nFunEvals++
	if floats.HasNaN(n.currGrad) {
		return 0, nFunEvals, common.Fail(common.UserFunctionError, "newton: NaN in gradient at %v", n.currLoc)
	}

	var dir mat.VecDense
	dir.MulVec(&inv, mat.NewVecDense(dim, n.currGrad))

	copy(loc, n.currLoc)
	floats.Sub(loc, dir.RawVector().Data)
	stepNorm = floats.Distance(loc, n.currLoc, 2)

	copy(n.currLoc, loc)
	return stepNorm, nFunEvals, nil
}
