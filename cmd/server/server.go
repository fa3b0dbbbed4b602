// Command server coordinates a distributed basin of attraction render.
// It splits the image into tiles and hands them to every connected client;
// the clients do all the Newton iterations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"

	"github.com/marben/irpc"
	"golang.org/x/sync/errgroup"

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
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	params.RegisterFlags(fs)
	tcpAddr := fs.String("tcp", ":8081", "tcp address for irpc clients")
	httpAddr := fs.String("http", ":8080", "http address for websocket clients and the image")
	tileSize := fs.Int("tile", 64, "tile edge in pixels")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *tileSize <= 0 {
		return fmt.Errorf("tile size %d must be positive", *tileSize)
	}

	// reject a bad job before anybody connects
	if _, err := render.NewJob(params, 1); err != nil {
		return fmt.Errorf("params: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	imgWorkScheduler := newImgWorkScheduler(params, *tileSize)

	// imgProviderIrpcService lets cli clients block until the full image is rendered
	imgProviderIrpcService := basin.NewImgProviderIrpcService(imgWorkScheduler)
	// progressProviderIrpcService lets them report progress meanwhile
	progressProviderIrpcService := basin.NewProgressProviderIrpcService(imgWorkScheduler)

	// irpc server with onConnect hook to plug clients into rendering
	irpcServer := irpc.NewServer(irpc.WithOnConnect(func(ep *irpc.Endpoint) {
		go func() {
			log.Printf("got connection from: %s", ep.RemoteAddr())

			// Each client provides us with basin.Renderer so we can use it to render tiles of full image
			rendererIrpcClient, err := basin.NewRendererIrpcClient(ep)
			if err != nil {
				log.Printf("err: new Rendering client: %v", err)
				return
			}

			if err := imgWorkScheduler.addRenderer(rendererIrpcClient); err != nil {
				log.Printf("err: render on client %q: %v", ep.RemoteAddr(), err)
				return
			}
		}()
	}))
	irpcServer.AddService(imgProviderIrpcService, progressProviderIrpcService)

	log.Printf("tcp listening on %s", *tcpAddr)
	tcpListener, err := net.Listen("tcp", *tcpAddr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}

	websocketListener, httpServer := webServer(ctx, *httpAddr, imgWorkScheduler)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("httpServer: %w", err)
		}
		return nil
	})
	// irpcServer can serve multiple listeners. In this case both tcp and websocket
	g.Go(func() error {
		if err := irpcServer.Serve(tcpListener); err != nil && ctx.Err() == nil {
			return fmt.Errorf("server.Serve tcp: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := irpcServer.Serve(websocketListener); err != nil && ctx.Err() == nil {
			return fmt.Errorf("server.Serve ws: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-imgWorkScheduler.done():
			log.Printf("image complete, still serving it until interrupted")
		case <-ctx.Done():
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("shutting down")
		tcpListener.Close()
		websocketListener.Close()
		return httpServer.Close()
	})

	log.Printf("basin server waiting for tcp and websocket connections")
	return g.Wait()
}
