// cliclient is a CLI client for the distributed basin renderer.
// It lends its CPU to the server as a renderer, waits for the fully rendered
// image and saves it as a PNG file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/marben/irpc"

	basin "github.com/Robaina/BasinOfAttraction"
	"github.com/Robaina/BasinOfAttraction/render"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// dial connects to addr over tcp, or over websocket for ws:// and wss:// urls.
func dial(ctx context.Context, addr string) (io.ReadWriteCloser, error) {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		c, _, err := websocket.Dial(ctx, addr, nil)
		if err != nil {
			return nil, fmt.Errorf("websocket.Dial %s: %w", addr, err)
		}
		// tiles are far larger than the default read limit
		c.SetReadLimit(-1)
		return websocket.NetConn(context.WithoutCancel(ctx), c, websocket.MessageBinary), nil
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	return conn, nil
}

// run connects to the basin server, renders tiles for it, and saves the final image as a PNG file.
func run(args []string) error {
	fs := flag.NewFlagSet("cliclient", flag.ContinueOnError)
	addr := fs.String("addr", "localhost:8081", "server address, host:port or ws://host:port/ws")
	out := fs.String("out", "basin.png", "output PNG file")
	workers := fs.Int("workers", 0, "goroutines per tile, GOMAXPROCS when 0")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Connecting to basin server on %s...", *addr)
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	conn, err := dial(dialCtx, *addr)
	cancel()
	if err != nil {
		return err
	}
	defer conn.Close()

	// The server calls this renderer service to render tiles using our CPU
	renderer := render.RendererImpl{
		Workers:      *workers,
		OnTileRender: func(tile image.Rectangle) { log.Printf("Rendering tile: %s", tile) },
	}
	rendererService := basin.NewRendererIrpcService(renderer)
	ep := irpc.NewEndpoint(conn, irpc.WithEndpointServices(rendererService))

	client, err := basin.NewImgProviderIrpcClient(ep)
	if err != nil {
		return fmt.Errorf("failed to create ImgProvider client: %w", err)
	}
	progress, err := basin.NewProgressProviderIrpcClient(ep)
	if err != nil {
		return fmt.Errorf("failed to create ProgressProvider client: %w", err)
	}

	go reportProgress(ctx, progress)

	log.Printf("Requesting fully rendered image from server...")
	type result struct {
		img image.RGBA
		err error
	}
	ch := make(chan result, 1)
	go func() {
		img, err := client.GetImage()
		ch <- result{img, err}
	}()

	var img image.RGBA
	select {
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("client.GetImage: %w", r.err)
		}
		img = r.img
	case <-ctx.Done():
		return context.Cause(ctx)
	}

	log.Printf("Saving rendered image to %q...", *out)
	if err := savePNG(*out, &img); err != nil {
		return err
	}
	log.Printf("Fully rendered image saved to %q", *out)
	return nil
}

func reportProgress(ctx context.Context, pp basin.ProgressProvider) {
	t := time.NewTicker(2 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		p, err := pp.Progress()
		if err != nil {
			log.Printf("progress: %v", err)
			return
		}
		log.Printf("server progress: %.1f%% with %d workers", 100*p.Fraction(), p.Workers)
		if p.FinishedPixels == p.TotalPixels {
			return
		}
	}
}

func savePNG(filename string, img image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}
