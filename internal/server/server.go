// Package server runs a Fiber app until SIGINT/SIGTERM and then drains it.
package server

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests may take to finish.
const ShutdownTimeout = 20 * time.Second

// Run listens on addr and blocks until the process is signalled or the
// listener fails.
func Run(app *fiber.App, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	return Serve(ctx, app, addr)
}

// Serve listens on addr until ctx is done, then shuts app down gracefully.
func Serve(ctx context.Context, app *fiber.App, addr string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("[server] listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("[server] shutting down, waiting for pending requests")
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("[server] stopped")
	return nil
}
