package basin

import (
	"errors"
	"flag"
	"image"
	"math"
	"testing"
)

func TestPixelToPlaneEdges(t *testing.T) {
	regions := []Region{UnitSquare, PiSquare, TenSquare, {RealMin: 0.1, RealMax: 0.3, ImagMin: -7, ImagMax: -6.5}}
	rasters := []Raster{{1, 1}, {4, 4}, {640, 480}, {3, 1000}}
	for _, r := range regions {
		for _, ras := range rasters {
			if got := r.PixelToPlane(ras, 0, 0); got != complex(r.RealMin, r.ImagMin) {
				t.Errorf("%+v %+v: pixel (0,0) = %v", r, ras, got)
			}
			last := r.PixelToPlane(ras, ras.Width-1, ras.Height-1)
			if !(real(last) < r.RealMax) || !(imag(last) < r.ImagMax) {
				t.Errorf("%+v %+v: last pixel %v reaches the far edge", r, ras, last)
			}
		}
	}
}

func TestPixelToPlaneStep(t *testing.T) {
	ras := Raster{Width: 4, Height: 4}
	want := []float64{-1, -0.5, 0, 0.5}
	for i, w := range want {
		if got := UnitSquare.PixelToPlane(ras, i, i); got != complex(w, w) {
			t.Errorf("pixel (%d,%d) = %v, want (%g%+gi)", i, i, got, w, w)
		}
	}
}

func TestRegionValidate(t *testing.T) {
	tests := []struct {
		name string
		r    Region
		ok   bool
	}{
		{"unit", UnitSquare, true},
		{"flat real", Region{RealMin: 1, RealMax: 1, ImagMin: 0, ImagMax: 1}, false},
		{"reversed imag", Region{RealMin: 0, RealMax: 1, ImagMin: 1, ImagMax: 0}, false},
		{"nan", Region{RealMin: math.NaN(), RealMax: 1, ImagMin: 0, ImagMax: 1}, false},
		{"inf", Region{RealMin: 0, RealMax: math.Inf(1), ImagMin: 0, ImagMax: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidRegion) {
				t.Fatalf("err = %v, want ErrInvalidRegion", err)
			}
		})
	}
}

func TestRasterValidate(t *testing.T) {
	for _, r := range []Raster{{0, 1}, {1, 0}, {-3, 4}} {
		if err := r.Validate(); !errors.Is(err, ErrInvalidRegion) {
			t.Errorf("%+v: err = %v", r, err)
		}
	}
	if err := (Raster{1, 1}).Validate(); err != nil {
		t.Errorf("1x1: %v", err)
	}
}

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("-2, 2,-1.5,1.5")
	if err != nil {
		t.Fatal(err)
	}
	if want := (Region{RealMin: -2, RealMax: 2, ImagMin: -1.5, ImagMax: 1.5}); r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
	for _, s := range []string{"", "1,2,3", "a,b,c,d", "1,0,0,1"} {
		if _, err := ParseRegion(s); !errors.Is(err, ErrInvalidRegion) {
			t.Errorf("ParseRegion(%q) err = %v", s, err)
		}
	}
}

func TestParamsFlags(t *testing.T) {
	p := DefaultParams()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	p.RegisterFlags(fs)
	err := fs.Parse([]string{"-func", "z3", "-width", "64", "-height", "48", "-region", "unit", "-metric", "modulus", "-shade=false"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Function != "z3" || p.Width != 64 || p.Height != 48 || p.Region != UnitSquare || p.Metric != "modulus" || p.Shade {
		t.Errorf("unexpected params %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	if err := fs.Parse([]string{"-region", "0,1,0,2"}); err != nil {
		t.Fatal(err)
	}
	if want := (Region{RealMax: 1, ImagMax: 2}); p.Region != want {
		t.Errorf("region %+v, want %+v", p.Region, want)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		want   error
	}{
		{"no function", func(p *Params) { p.Function = "" }, ErrInvalidParams},
		{"zero width", func(p *Params) { p.Width = 0 }, ErrInvalidRegion},
		{"bad region", func(p *Params) { p.Region.RealMax = p.Region.RealMin }, ErrInvalidRegion},
		{"zero tolerance", func(p *Params) { p.Tolerance = 0 }, ErrInvalidParams},
		{"zero cap", func(p *Params) { p.MaxIterations = 0 }, ErrInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			if err := p.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSplitRect(t *testing.T) {
	r := image.Rect(0, 0, 130, 70)
	tiles := SplitRect(r, 64, 64)
	if len(tiles) != 6 {
		t.Fatalf("got %d tiles, want 6", len(tiles))
	}
	area := 0
	for i, a := range tiles {
		if !a.In(r) {
			t.Errorf("tile %v outside %v", a, r)
		}
		for _, b := range tiles[i+1:] {
			if a.Overlaps(b) {
				t.Errorf("tiles %v and %v overlap", a, b)
			}
		}
		area += a.Dx() * a.Dy()
	}
	if area != r.Dx()*r.Dy() {
		t.Errorf("tiles cover %d pixels, want %d", area, r.Dx()*r.Dy())
	}
	if last := tiles[len(tiles)-1]; last != image.Rect(128, 64, 130, 70) {
		t.Errorf("last tile %v", last)
	}
}

func TestProgressFraction(t *testing.T) {
	if f := (Progress{}).Fraction(); f != 0 {
		t.Errorf("empty fraction %g", f)
	}
	if f := (Progress{FinishedPixels: 1, TotalPixels: 4}).Fraction(); f != 0.25 {
		t.Errorf("fraction %g", f)
	}
}
