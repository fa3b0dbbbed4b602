// Package colormap turns Newton results into pixel colors.
//
// A Mapper is pure policy: the sampler knows nothing about colors, and any
// caller-defined mapping can replace the ones here.
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/cmplx"
	"sort"

	"github.com/Robaina/BasinOfAttraction/newton"
)

type Mapper interface {
	Color(newton.Result) color.RGBA
}

// MapperFunc adapts a function to a Mapper
type MapperFunc func(newton.Result) color.RGBA

func (f MapperFunc) Color(r newton.Result) color.RGBA { return f(r) }

// Sentinel is the color of pixels that never converged
var Sentinel = color.RGBA{A: 255}

func clamp(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{R: clamp(r), G: clamp(g), B: clamp(b), A: 255}
}

// byRoot builds a Mapper from a formula on the root. Non-converged results
// always map to Sentinel.
func byRoot(f func(re, im float64) color.RGBA) Mapper {
	return MapperFunc(func(r newton.Result) color.RGBA {
		if !r.Converged() {
			return Sentinel
		}
		return f(real(r.Root), imag(r.Root))
	})
}

var (
	ByRealAxis = byRoot(func(re, im float64) color.RGBA { return rgb(100*re, 100*im, 100*re) })
	ByImagAxis = byRoot(func(re, im float64) color.RGBA { return rgb(100*im, im, 100*re) })
	Flat       = byRoot(func(re, _ float64) color.RGBA { return rgb(0, 0, 100*re) })
	Diagonal   = byRoot(func(re, _ float64) color.RGBA { return rgb(0, 100*re, 100*re) })

	// Hue spreads the roots around the color wheel by their phase and shifts
	// each basin slightly with the iteration count.
	Hue = MapperFunc(func(r newton.Result) color.RGBA {
		if !r.Converged() {
			return Sentinel
		}
		h := (cmplx.Phase(r.Root) + math.Pi) / (2 * math.Pi)
		return hsv(h+float64(r.Iterations)*0.01, 1, 1)
	})
)

// Shaded darkens m's colors as the iteration count grows. A pixel that
// settled after n extra steps keeps 1/factor of its brightness, where
// factor = sqrt(n)/sqrt(10); factors up to 1 leave the color untouched.
func Shaded(m Mapper) Mapper {
	return MapperFunc(func(r newton.Result) color.RGBA {
		c := m.Color(r)
		if !r.Converged() {
			return c
		}
		factor := math.Sqrt(float64(r.Iterations)) / math.Sqrt(10)
		if factor <= 1 {
			return c
		}
		k := 1 / factor
		return color.RGBA{
			R: uint8(float64(c.R) * k),
			G: uint8(float64(c.G) * k),
			B: uint8(float64(c.B) * k),
			A: c.A,
		}
	})
}

// Simple HSV → RGB
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

var ErrUnknownPalette = errors.New("unknown palette")

var palettes = map[string]Mapper{
	"real":     ByRealAxis,
	"imag":     ByImagAxis,
	"flat":     Flat,
	"diagonal": Diagonal,
	"hue":      Hue,
}

func Lookup(name string) (Mapper, error) {
	m, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	return m, nil
}

// Names lists the registered palettes in sorted order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
