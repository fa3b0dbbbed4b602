package basin

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidRegion = errors.New("invalid region")

// Region is a rectangle in the complex plane
type Region struct {
	RealMin, RealMax float64
	ImagMin, ImagMax float64
}

// Raster is the pixel grid a Region is sampled onto
type Raster struct {
	Width, Height int
}

// Named regions used by the command line tools
var (
	// PiSquare spans ±π on both axes
	PiSquare = Region{
		RealMin: -math.Pi,
		RealMax: math.Pi,
		ImagMin: -math.Pi,
		ImagMax: math.Pi,
	}

	// TenSquare spans ±10 on both axes, useful for the trigonometric functions
	TenSquare = Region{
		RealMin: -10,
		RealMax: 10,
		ImagMin: -10,
		ImagMax: 10,
	}

	// UnitSquare spans ±1, tight around the roots of unity
	UnitSquare = Region{
		RealMin: -1,
		RealMax: 1,
		ImagMin: -1,
		ImagMax: 1,
	}
)

var regions = map[string]Region{
	"pi":   PiSquare,
	"ten":  TenSquare,
	"unit": UnitSquare,
}

// LookupRegion returns a named region
func LookupRegion(name string) (Region, bool) {
	r, ok := regions[name]
	return r, ok
}

func finite(v ...float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func (r Region) Validate() error {
	if !finite(r.RealMin, r.RealMax, r.ImagMin, r.ImagMax) {
		return fmt.Errorf("%w: bounds must be finite: %+v", ErrInvalidRegion, r)
	}
	if !(r.RealMax > r.RealMin) {
		return fmt.Errorf("%w: real max %g <= real min %g", ErrInvalidRegion, r.RealMax, r.RealMin)
	}
	if !(r.ImagMax > r.ImagMin) {
		return fmt.Errorf("%w: imag max %g <= imag min %g", ErrInvalidRegion, r.ImagMax, r.ImagMin)
	}
	return nil
}

func (r Raster) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: raster %dx%d must have positive dimensions", ErrInvalidRegion, r.Width, r.Height)
	}
	return nil
}

// PixelToPlane maps pixel (i, j) of raster onto the plane.
// Pixel (0, 0) lands exactly on (RealMin, ImagMin); the right and bottom
// edges of the region are never reached.
func (r Region) PixelToPlane(raster Raster, i, j int) complex128 {
	re := r.RealMin + float64(i)*(r.RealMax-r.RealMin)/float64(raster.Width)
	im := r.ImagMin + float64(j)*(r.ImagMax-r.ImagMin)/float64(raster.Height)
	return complex(re, im)
}
