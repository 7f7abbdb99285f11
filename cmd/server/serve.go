package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// serve runs e until ctx is cancelled, then drains in-flight requests for up to
// drainTimeout. afterDrain runs once the server has stopped accepting work, so
// resources the handlers depend on stay alive for the whole drain.
func serve(ctx context.Context, e *echo.Echo, addr string, drainTimeout time.Duration, afterDrain func(), log zerolog.Logger) error {
	defer afterDrain()

	startErr := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			startErr <- err
		}
	}()

	select {
	case err := <-startErr:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
