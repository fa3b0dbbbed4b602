// Package cplx implements the complex arithmetic used by the Newton iteration.
//
// Values are plain complex128. The formulas are written out component-wise so
// that division by zero produces NaN/Inf components instead of relying on the
// runtime's complex division, and so that Pow keeps its single-quadrant angle.
package cplx

import "math"

func Add(a, b complex128) complex128 {
	return complex(real(a)+real(b), imag(a)+imag(b))
}

func Sub(a, b complex128) complex128 {
	return complex(real(a)-real(b), imag(a)-imag(b))
}

func Mul(a, b complex128) complex128 {
	return complex(
		real(a)*real(b)-imag(a)*imag(b),
		imag(a)*real(b)+real(a)*imag(b),
	)
}

// Div returns a/b. When |b|² is zero the components are NaN or ±Inf.
func Div(a, b complex128) complex128 {
	d := real(b)*real(b) + imag(b)*imag(b)
	return complex(
		(real(a)*real(b)+imag(a)*imag(b))/d,
		(imag(a)*real(b)-real(a)*imag(b))/d,
	)
}

// Pow raises a to the real power n in polar form.
//
// The angle is atan(im/re), not atan2, so the result is only correct for
// points with a positive real part. Basin shapes of pow-based functions
// depend on this.
func Pow(a complex128, n float64) complex128 {
	r := math.Sqrt(real(a)*real(a) + imag(a)*imag(a))
	theta := math.Atan(imag(a) / real(a))
	rn := math.Pow(r, n)
	s, c := math.Sincos(n * theta)
	return complex(rn*c, rn*s)
}

// Sin uses sin(a+bi) = sin(a)cosh(b) + i cos(a)sinh(b).
func Sin(z complex128) complex128 {
	s, c := math.Sincos(real(z))
	return complex(s*math.Cosh(imag(z)), c*math.Sinh(imag(z)))
}

// Cos uses cos(a+bi) = cos(a)cosh(b) - i sin(a)sinh(b).
func Cos(z complex128) complex128 {
	s, c := math.Sincos(real(z))
	return complex(c*math.Cosh(imag(z)), -s*math.Sinh(imag(z)))
}

// Tan uses tan(a+bi) = (sin(2a) + i sinh(2b)) / (cos(2a) + cosh(2b)).
func Tan(z complex128) complex128 {
	s, c := math.Sincos(2 * real(z))
	d := c + math.Cosh(2*imag(z))
	return complex(s/d, math.Sinh(2*imag(z))/d)
}

// Round quantizes both components to the given number of decimal places.
func Round(z complex128, places int) complex128 {
	f := math.Pow(10, float64(places))
	return complex(math.Round(real(z)*f)/f, math.Round(imag(z)*f)/f)
}

// IsFinite reports whether neither component is NaN or infinite.
func IsFinite(z complex128) bool {
	re, im := real(z), imag(z)
	return !math.IsNaN(re) && !math.IsNaN(im) && !math.IsInf(re, 0) && !math.IsInf(im, 0)
}
