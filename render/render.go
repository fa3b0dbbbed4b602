// Package render draws basins of attraction into RGBA images. RendererImpl is
// the worker side of a distributed render and is also used for local renders.
package render

import (
	"context"
	"fmt"
	"image"
	"runtime"

	basin "github.com/Robaina/BasinOfAttraction"
	"github.com/Robaina/BasinOfAttraction/colormap"
	"github.com/Robaina/BasinOfAttraction/functions"
	"github.com/Robaina/BasinOfAttraction/newton"
	"github.com/Robaina/BasinOfAttraction/sampler"
)

type RendererImpl struct {
	// Workers per tile, GOMAXPROCS when zero
	Workers int
	// OnTileRender is called before a tile is rendered, if set
	OnTileRender func(tile image.Rectangle)
}

var _ basin.Renderer = RendererImpl{}

func (imp RendererImpl) workers() int {
	if imp.Workers > 0 {
		return imp.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Job is a Params with its names resolved
type Job struct {
	Sampler sampler.Sampler
	Mapper  colormap.Mapper
}

// NewJob resolves the function and palette names of p and checks the whole
// configuration before any pixel is computed.
func NewJob(p basin.Params, workers int) (Job, error) {
	if err := p.Validate(); err != nil {
		return Job{}, err
	}
	pair, err := functions.Lookup(p.Function)
	if err != nil {
		return Job{}, err
	}
	mapper, err := colormap.Lookup(p.Palette)
	if err != nil {
		return Job{}, err
	}
	if p.Shade {
		mapper = colormap.Shaded(mapper)
	}
	metric, err := newton.ParseMetric(p.Metric)
	if err != nil {
		return Job{}, err
	}

	s := sampler.Sampler{
		F:      pair.F,
		DF:     pair.DF,
		Region: p.Region,
		Raster: p.Raster(),
		Finder: newton.Finder{
			Tolerance:     p.Tolerance,
			MaxIterations: p.MaxIterations,
			Precision:     p.Precision,
			Metric:        metric,
		},
		Workers: workers,
	}
	if err := s.Validate(); err != nil {
		return Job{}, err
	}
	return Job{Sampler: s, Mapper: mapper}, nil
}

// Draw renders rect into a new image with the same bounds. Pixels are
// written by disjoint workers, so no locking is needed.
func (j Job) Draw(ctx context.Context, rect image.Rectangle) (*image.RGBA, error) {
	img := image.NewRGBA(rect.Intersect(j.Sampler.Bounds()))
	err := j.Sampler.Walk(ctx, img.Rect, func(x, y int, r newton.Result) {
		img.SetRGBA(x, y, j.Mapper.Color(r))
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// RenderTile implements basin.Renderer.
func (imp RendererImpl) RenderTile(p basin.Params, tile image.Rectangle) (image.RGBA, error) {
	if imp.OnTileRender != nil {
		imp.OnTileRender(tile)
	}

	job, err := NewJob(p, imp.workers())
	if err != nil {
		return image.RGBA{}, fmt.Errorf("render tile %v: %w", tile, err)
	}
	img, err := job.Draw(context.Background(), tile)
	if err != nil {
		return image.RGBA{}, fmt.Errorf("render tile %v: %w", tile, err)
	}
	return *img, nil
}

// Image renders the full raster of p on this machine.
func Image(ctx context.Context, p basin.Params, workers int) (*image.RGBA, error) {
	job, err := NewJob(p, workers)
	if err != nil {
		return nil, err
	}
	return job.Draw(ctx, job.Sampler.Bounds())
}
