// Package newton finds roots of complex functions with Newton's method,
//
//	r_(n+1) = r_n - f(r_n) / f'(r_n)
//
// and reports which root a starting guess settles on and how many steps it
// took. A starting guess that never settles yields a non-converged Result
// rather than an error: one bad pixel must not abort a whole image.
package newton

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/Robaina/BasinOfAttraction/cplx"
)

// Func is a total function on the complex plane.
type Func func(complex128) complex128

// Metric measures the distance between two consecutive iterates.
type Metric int

const (
	// RealPart compares only the real parts of consecutive iterates.
	RealPart Metric = iota
	// Modulus compares the full complex distance of consecutive iterates.
	Modulus
)

func (m Metric) String() string {
	switch m {
	case RealPart:
		return "real"
	case Modulus:
		return "modulus"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

func (m Metric) distance(a, b complex128) float64 {
	if m == Modulus {
		return cmplx.Abs(b - a)
	}
	return math.Abs(real(b) - real(a))
}

var ErrUnknownMetric = errors.New("unknown convergence metric")

// ParseMetric parses the names returned by Metric.String.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(s) {
	case "", "real":
		return RealPart, nil
	case "modulus", "abs":
		return Modulus, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

type Status int

const (
	Converged Status = iota
	// DivergentDerivative means an iterate became NaN or infinite, usually
	// because f' vanished.
	DivergentDerivative
	// NonConvergent means MaxIterations was reached without settling.
	NonConvergent
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case DivergentDerivative:
		return "divergent derivative"
	case NonConvergent:
		return "non-convergent"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result of one Newton run.
// Root is rounded to the finder's precision when Status is Converged and is
// NaN otherwise. Iterations counts the steps taken after the first two.
type Result struct {
	Root       complex128
	Iterations int
	Status     Status
}

func (r Result) Converged() bool { return r.Status == Converged }

var ErrInvalidFinder = errors.New("invalid root finder configuration")

type Finder struct {
	// Tolerance is the distance between consecutive iterates below which the
	// iteration stops.
	Tolerance float64
	// MaxIterations bounds the number of steps after the first two.
	MaxIterations int
	// Precision is the number of decimal places the root is rounded to.
	Precision int
	Metric    Metric
}

func DefaultFinder() Finder {
	return Finder{
		Tolerance:     1e-6,
		MaxIterations: 100,
		Precision:     6,
		Metric:        RealPart,
	}
}

func (f Finder) Validate() error {
	if !(f.Tolerance > 0) || math.IsInf(f.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance %g must be positive and finite", ErrInvalidFinder, f.Tolerance)
	}
	if f.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations %d must be positive", ErrInvalidFinder, f.MaxIterations)
	}
	if f.Precision < 0 || f.Precision > 15 {
		return fmt.Errorf("%w: precision %d out of range [0, 15]", ErrInvalidFinder, f.Precision)
	}
	if f.Metric != RealPart && f.Metric != Modulus {
		return fmt.Errorf("%w: %w: %v", ErrInvalidFinder, ErrUnknownMetric, f.Metric)
	}
	return nil
}

func step(f, df Func, z complex128) complex128 {
	return cplx.Sub(z, cplx.Div(f(z), df(z)))
}

func failed(iter int, s Status) Result {
	return Result{Root: cmplx.NaN(), Iterations: iter, Status: s}
}

// FindRoot runs Newton's method from z0. The caller keeps df the derivative
// of f; a mismatched pair gives wrong roots, not an error.
func (f Finder) FindRoot(fn, df Func, z0 complex128) Result {
	prev := step(fn, df, z0)
	if !cplx.IsFinite(prev) {
		return failed(0, DivergentDerivative)
	}
	cur := step(fn, df, prev)
	if !cplx.IsFinite(cur) {
		return failed(0, DivergentDerivative)
	}

	iter := 0
	for f.Metric.distance(prev, cur) > f.Tolerance {
		if iter >= f.MaxIterations {
			return failed(iter, NonConvergent)
		}
		next := step(fn, df, cur)
		iter++
		if !cplx.IsFinite(next) {
			return failed(iter, DivergentDerivative)
		}
		prev, cur = cur, next
	}

	return Result{Root: cplx.Round(cur, f.Precision), Iterations: iter, Status: Converged}
}
