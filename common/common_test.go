package common

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestStatusStrings(t *testing.T) {
	for s, str := range map[Status]string{
		Continue:          "Continue",
		BoundsConverged:   "BoundsConverged",
		InvalidBounds:     "InvalidBounds",
		SingularHessian:   "SingularHessian",
		MaximumIterations: "MaximumIterations",
		Status(1000):      "UnregisteredStatus",
	} {
		if s.String() != str {
			t.Errorf("status %d: expected %q, found %q", int(s), str, s.String())
		}
	}
	custom := NewStatus("Custom")
	if custom.String() != "Custom" || custom.Failed() {
		t.Errorf("custom status registered as %q, failed %v", custom.String(), custom.Failed())
	}
}

func TestFailure(t *testing.T) {
	err := fmt.Errorf("error initializing: %w", Fail(SingularHessian, "at %v", []float64{1, 2}))
	if !IsStatus(err, SingularHessian) {
		t.Errorf("wrapped failure lost its status: %v", err)
	}
	if IsStatus(err, MaximumIterations) {
		t.Errorf("failure matched the wrong status")
	}
	if IsStatus(errors.New("other"), SingularHessian) {
		t.Errorf("plain error matched a status")
	}
	var f *Failure
	if !errors.As(err, &f) || !f.Failed() {
		t.Errorf("failure status should be failing")
	}
	want := "error initializing: optimization failed: SingularHessian: at [1 2]"
	if err.Error() != want {
		t.Errorf("expected %q, found %q", want, err.Error())
	}
}

func TestUniToler(t *testing.T) {
	var tol UniToler
	tol.Init(1e-3, 1)
	if tol.AbsConverged() {
		t.Errorf("converged before any value was added")
	}
	tol.Add(1e-3)
	if tol.AbsConverged() {
		t.Errorf("a value equal to the tolerance must not converge")
	}
	tol.Add(9e-4)
	if !tol.AbsConverged() {
		t.Errorf("a value below the tolerance must converge")
	}

	tol.Init(math.NaN(), 0)
	if tol.AbsConverged() {
		t.Errorf("a NaN tolerance must never converge")
	}
}

type fixedStatus Status

func (s fixedStatus) Status() Status { return Status(s) }

func TestCheckStatus(t *testing.T) {
	for _, test := range []struct {
		cs   []Statuser
		want Status
	}{
		{nil, Continue},
		{[]Statuser{fixedStatus(Continue), fixedStatus(Continue)}, Continue},
		{[]Statuser{fixedStatus(Continue), fixedStatus(BoundsConverged), fixedStatus(MaximumIterations)}, BoundsConverged},
		{[]Statuser{fixedStatus(BracketStalled), fixedStatus(LocChangeTol)}, BracketStalled},
	} {
		if s := CheckStatus(test.cs...); s != test.want {
			t.Errorf("expected %v, found %v", test.want, s)
		}
	}
}

func TestCommonLimits(t *testing.T) {
	settings := DefaultCommonSettings()
	settings.MaximumIterations = 2
	c := NewCommon()
	if err := c.Init(settings); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if s := c.Status(); s != Continue {
			t.Fatalf("iteration %d: status %v", i, s)
		}
		if err := c.Iterate(3); err != nil {
			t.Fatal(err)
		}
	}
	if s := c.Status(); s != MaximumIterations {
		t.Errorf("expected MaximumIterations, found %v", s)
	}
	r := c.Result(MaximumIterations)
	if r.Iterations != 2 || r.FunctionEvaluations != 6 {
		t.Errorf("unexpected counters: %+v", r)
	}

	settings = DefaultCommonSettings()
	settings.MaximumFunctionEvaluations = 5
	if err := c.Init(settings); err != nil {
		t.Fatal(err)
	}
	c.Iterate(5)
	if s := c.Status(); s != MaximumFunctionEvaluations {
		t.Errorf("expected MaximumFunctionEvaluations, found %v", s)
	}
}
