package basin

import (
	"image"
)

//go:generate go run github.com/marben/irpc/cmd/irpc $GOFILE

// Renderer renders one tile of the full raster described by p.
// The returned image has the tile's bounds in global pixel coordinates.
type Renderer interface {
	RenderTile(p Params, tile image.Rectangle) (image.RGBA, error)
}

// ImgProvider returns the complete image once every tile is rendered.
type ImgProvider interface {
	GetImage() (image.RGBA, error)
}

type ProgressProvider interface {
	Progress() (Progress, error)
}
