// Package sampler classifies every pixel of a raster by the root its plane
// coordinate converges to under Newton's method.
//
// Pixels are independent, so rows are statically partitioned across a pool
// of goroutines. The output never depends on the number of workers.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	basin "github.com/Robaina/BasinOfAttraction"
	"github.com/Robaina/BasinOfAttraction/newton"
)

var ErrNoFunction = errors.New("function pair not set")

type Sampler struct {
	// F and DF must be a function and its derivative.
	F, DF newton.Func

	Region basin.Region
	Raster basin.Raster
	Finder newton.Finder

	// Workers is the number of goroutines sharing the rows. Values below 2
	// walk the raster on the calling goroutine in row-major order.
	Workers int
}

// Validate fails on configurations for which no meaningful image exists.
func (s Sampler) Validate() error {
	if s.F == nil || s.DF == nil {
		return ErrNoFunction
	}
	if err := s.Region.Validate(); err != nil {
		return err
	}
	if err := s.Raster.Validate(); err != nil {
		return err
	}
	return s.Finder.Validate()
}

// Bounds is the full raster as a rectangle.
func (s Sampler) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Raster.Width, s.Raster.Height)
}

// At classifies a single pixel.
func (s Sampler) At(i, j int) newton.Result {
	return s.Finder.FindRoot(s.F, s.DF, s.Region.PixelToPlane(s.Raster, i, j))
}

// Walk classifies every pixel of rect, clipped to the raster, and hands each
// result to fn. With more than one worker fn is called concurrently, but
// never twice for the same pixel.
//
// ctx is checked between rows. A cancelled walk returns the context's error;
// rows already started are finished first.
func (s Sampler) Walk(ctx context.Context, rect image.Rectangle, fn func(i, j int, r newton.Result)) error {
	if err := s.Validate(); err != nil {
		return err
	}
	rect = rect.Intersect(s.Bounds())
	if rect.Empty() {
		return nil
	}

	row := func(j int) {
		for i := rect.Min.X; i < rect.Max.X; i++ {
			fn(i, j, s.At(i, j))
		}
	}

	workers := min(s.Workers, rect.Dy())
	if workers < 2 {
		for j := rect.Min.Y; j < rect.Max.Y; j++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			row(j)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for j := rect.Min.Y + w; j < rect.Max.Y; j += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				row(j)
			}
			return nil
		})
	}
	return g.Wait()
}

// Grid holds one result per pixel of Rect, row-major.
type Grid struct {
	Rect    image.Rectangle
	Results []newton.Result
}

func NewGrid(rect image.Rectangle) *Grid {
	return &Grid{Rect: rect, Results: make([]newton.Result, rect.Dx()*rect.Dy())}
}

// Index returns the offset of pixel (i, j) in Results.
func (g *Grid) Index(i, j int) int {
	return (j-g.Rect.Min.Y)*g.Rect.Dx() + (i - g.Rect.Min.X)
}

func (g *Grid) At(i, j int) newton.Result {
	return g.Results[g.Index(i, j)]
}

// SampleRect materializes the results of rect. Each slot is written once,
// by whichever worker owns its row.
func (s Sampler) SampleRect(ctx context.Context, rect image.Rectangle) (*Grid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	g := NewGrid(rect.Intersect(s.Bounds()))
	err := s.Walk(ctx, g.Rect, func(i, j int, r newton.Result) {
		g.Results[g.Index(i, j)] = r
	})
	if err != nil {
		return nil, fmt.Errorf("sample %v: %w", g.Rect, err)
	}
	return g, nil
}

// Sample materializes the whole raster.
func (s Sampler) Sample(ctx context.Context) (*Grid, error) {
	return s.SampleRect(ctx, s.Bounds())
}
