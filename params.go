package basin

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidParams = errors.New("invalid render params")

// Params describes a complete render job. It only holds plain values so it
// can travel to remote renderers; the function pair and the palette are
// referenced by name.
type Params struct {
	Function string
	Region   Region

	Width, Height int

	Tolerance     float64
	MaxIterations int
	Precision     int
	Metric        string

	Palette string
	Shade   bool
}

func DefaultParams() Params {
	return Params{
		Function:      "z5",
		Region:        PiSquare,
		Width:         1920,
		Height:        1080,
		Tolerance:     1e-6,
		MaxIterations: 100,
		Precision:     6,
		Metric:        "real",
		Palette:       "real",
		Shade:         true,
	}
}

func (p Params) Raster() Raster {
	return Raster{Width: p.Width, Height: p.Height}
}

// Validate checks the parts of p that do not need the function and palette
// catalogs. Names are resolved by the renderer.
func (p Params) Validate() error {
	if p.Function == "" {
		return fmt.Errorf("%w: no function", ErrInvalidParams)
	}
	if err := p.Region.Validate(); err != nil {
		return err
	}
	if err := p.Raster().Validate(); err != nil {
		return err
	}
	if !(p.Tolerance > 0) || math.IsInf(p.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance %g", ErrInvalidParams, p.Tolerance)
	}
	if p.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations %d", ErrInvalidParams, p.MaxIterations)
	}
	return nil
}

// RegisterFlags binds p's fields to fs, using the current values as defaults.
func (p *Params) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&p.Function, "func", p.Function, "function to find the roots of (z3, z5, z6, z7, sin, tan)")
	fs.IntVar(&p.Width, "width", p.Width, "image width in pixels")
	fs.IntVar(&p.Height, "height", p.Height, "image height in pixels")
	fs.Float64Var(&p.Tolerance, "tol", p.Tolerance, "convergence tolerance between consecutive iterates")
	fs.IntVar(&p.MaxIterations, "maxiter", p.MaxIterations, "iteration cap per pixel")
	fs.IntVar(&p.Precision, "precision", p.Precision, "decimal places roots are rounded to")
	fs.StringVar(&p.Metric, "metric", p.Metric, "convergence metric (real, modulus)")
	fs.StringVar(&p.Palette, "palette", p.Palette, "color mapping (real, imag, flat, diagonal, hue)")
	fs.BoolVar(&p.Shade, "shade", p.Shade, "darken pixels by iteration count")
	fs.Var((*regionFlag)(&p.Region), "region", "plane region: pi, ten, unit or realMin,realMax,imagMin,imagMax")
}

// regionFlag accepts either a preset name or four comma separated bounds
type regionFlag Region

func (f *regionFlag) String() string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g,%g", f.RealMin, f.RealMax, f.ImagMin, f.ImagMax)
}

func (f *regionFlag) Set(s string) error {
	if r, ok := LookupRegion(s); ok {
		*f = regionFlag(r)
		return nil
	}
	r, err := ParseRegion(s)
	if err != nil {
		return err
	}
	*f = regionFlag(r)
	return nil
}

// ParseRegion parses "realMin,realMax,imagMin,imagMax".
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("%w: %q: want realMin,realMax,imagMin,imagMax", ErrInvalidRegion, s)
	}
	var v [4]float64
	for i, part := range parts {
		if _, err := fmt.Sscan(strings.TrimSpace(part), &v[i]); err != nil {
			return Region{}, fmt.Errorf("%w: %q: %v", ErrInvalidRegion, part, err)
		}
	}
	r := Region{RealMin: v[0], RealMax: v[1], ImagMin: v[2], ImagMax: v[3]}
	return r, r.Validate()
}
