package config

import (
	"context"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Serve runs app on ln until ctx is cancelled. On cancellation it stops
// accepting connections and returns only after every in-flight request has
// completed, so callers may release shared resources once it returns.
func Serve(ctx context.Context, app *fiber.App, ln net.Listener) error {
	served := make(chan error, 1)
	go func() {
		served <- app.Listener(ln)
	}()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down, draining in-flight requests...")
	if err := app.ShutdownWithContext(context.Background()); err != nil {
		return err
	}
	return <-served
}
