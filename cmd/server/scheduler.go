package main

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"sync"

	basin "github.com/Robaina/BasinOfAttraction"
)

// imgWorkScheduler hands the tiles of one render job to every connected
// renderer and composites the results.
type imgWorkScheduler struct {
	params  basin.Params
	workers int
	img     *image.RGBA

	ctx       context.Context
	ctxCancel context.CancelFunc

	totalPixels    int
	finishedPixels int

	unstarted map[image.Rectangle]struct{}
	inProcess map[image.Rectangle]struct{}
	m         sync.Mutex
}

var (
	_ basin.ImgProvider      = (*imgWorkScheduler)(nil)
	_ basin.ProgressProvider = (*imgWorkScheduler)(nil)
)

func newImgWorkScheduler(p basin.Params, tileSize int) *imgWorkScheduler {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	allTilesSlice := basin.SplitRect(img.Bounds(), tileSize, tileSize)
	allTiles := make(map[image.Rectangle]struct{}, len(allTilesSlice))
	for _, t := range allTilesSlice {
		allTiles[t] = struct{}{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &imgWorkScheduler{
		params:      p,
		img:         img,
		unstarted:   allTiles,
		inProcess:   make(map[image.Rectangle]struct{}),
		totalPixels: p.Width * p.Height,
		ctx:         ctx,
		ctxCancel:   cancel,
	}
}

func (iws *imgWorkScheduler) popTile() (tile image.Rectangle, found bool) {
	iws.m.Lock()
	defer iws.m.Unlock()

	// Get unstarted tile
	if len(iws.unstarted) > 0 {
		for tile = range iws.unstarted {
			break
		}
		delete(iws.unstarted, tile)

		// Move popped tile to currently processed tiles
		iws.inProcess[tile] = struct{}{}
		return tile, true
	}

	// If there is no unstarted tile, we work again on a started one
	// so a slow renderer does not hold up the whole image
	if len(iws.inProcess) > 0 {
		for tile = range iws.inProcess {
			break
		}

		return tile, true
	}

	return image.Rectangle{}, false
}

// done is closed once every tile is composited
func (iws *imgWorkScheduler) done() <-chan struct{} {
	return iws.ctx.Done()
}

// GetImage implements basin.ImgProvider.
func (iws *imgWorkScheduler) GetImage() (image.RGBA, error) {
	<-iws.ctx.Done()
	return *iws.snapshot(), nil
}

// snapshot copies the image as composited so far
func (iws *imgWorkScheduler) snapshot() *image.RGBA {
	iws.m.Lock()
	defer iws.m.Unlock()
	img := *iws.img
	img.Pix = append([]byte(nil), iws.img.Pix...)
	return &img
}

// Progress implements basin.ProgressProvider.
func (iws *imgWorkScheduler) Progress() (basin.Progress, error) {
	iws.m.Lock()
	defer iws.m.Unlock()
	return basin.Progress{
		FinishedPixels: iws.finishedPixels,
		TotalPixels:    iws.totalPixels,
		Workers:        iws.workers,
	}, nil
}

func (iws *imgWorkScheduler) tileFinished(tileImg *image.RGBA) {
	rect := tileImg.Bounds()
	iws.m.Lock()
	defer iws.m.Unlock()

	// a tile rendered twice is only counted and drawn once
	if _, found := iws.inProcess[rect]; !found {
		return
	}

	draw.Draw(
		iws.img,
		rect,     // destination rectangle (global coords)
		tileImg,  // source image
		rect.Min, // source start
		draw.Src,
	)
	iws.finishedPixels += rect.Dx() * rect.Dy()
	delete(iws.inProcess, rect)

	log.Printf("finished: %f", float32(iws.finishedPixels)/float32(iws.totalPixels))

	if len(iws.unstarted) == 0 && len(iws.inProcess) == 0 {
		iws.ctxCancel()
	}
}

// tileFailed puts a tile back in line for the next renderer
func (iws *imgWorkScheduler) tileFailed(tile image.Rectangle) {
	iws.m.Lock()
	defer iws.m.Unlock()

	if _, found := iws.inProcess[tile]; found {
		delete(iws.inProcess, tile)
		iws.unstarted[tile] = struct{}{}
	}
}

func (iws *imgWorkScheduler) incActiveWorkers() {
	iws.m.Lock()
	iws.workers++
	w := iws.workers
	iws.m.Unlock()

	log.Printf("workers: %d", w)
}

func (iws *imgWorkScheduler) decActiveWorkers() {
	iws.m.Lock()
	iws.workers--
	w := iws.workers
	iws.m.Unlock()

	log.Printf("workers: %d", w)
}

// addRenderer renders unfinished tiles on the provided Renderer until none
// are left. It can be called from multiple goroutines in parallel.
// A failing renderer gives its tile back and is dropped.
func (iws *imgWorkScheduler) addRenderer(renderer basin.Renderer) error {
	iws.incActiveWorkers()
	defer iws.decActiveWorkers()

	for {
		tile, found := iws.popTile()
		if !found {
			return nil
		}
		tileImg, err := renderer.RenderTile(iws.params, tile)
		if err != nil {
			iws.tileFailed(tile)
			return fmt.Errorf("render of tile %s: %w", tile, err)
		}
		iws.tileFinished(&tileImg)
	}
}
