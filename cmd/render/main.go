// Command render draws a basin of attraction on this machine and saves it
// as a PNG file. No server is involved.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	basin "github.com/Robaina/BasinOfAttraction"
	"github.com/Robaina/BasinOfAttraction/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run(args []string) error {
	params := basin.DefaultParams()
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	params.RegisterFlags(fs)
	out := fs.String("out", "basin.png", "output PNG file")
	workers := fs.Int("workers", runtime.GOMAXPROCS(0), "rendering goroutines")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("rendering %s on %dx%d with %d workers", params.Function, params.Width, params.Height, *workers)
	start := time.Now()
	img, err := render.Image(ctx, params, *workers)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("render took %s", time.Since(start))

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("png.Encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("saved %q", *out)
	return nil
}
