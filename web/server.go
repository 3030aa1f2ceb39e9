package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dasdy/keyview/logging"
	"github.com/dasdy/keyview/web/routes"
)

var logCtx = logging.PackageCtx("web")

const shutdownTimeout = 5 * time.Second

func disableCacheInDevMode(dev bool, next http.Handler) http.Handler {
	if !dev {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// BuildServer registers the viewer page and the JSON API on a new mux.
func BuildServer(handler *routes.ServerHandler, dev bool) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", disableCacheInDevMode(dev, http.HandlerFunc(handler.IndexHandle)))
	mux.Handle("GET /keyboard", disableCacheInDevMode(dev, http.HandlerFunc(handler.KeyboardHandle)))
	mux.HandleFunc("GET /api/layout", handler.LayoutHandle)
	mux.HandleFunc("POST /api/layout", handler.LoadLayoutHandle)
	mux.HandleFunc("POST /api/events", handler.EventsHandle)
	mux.HandleFunc("POST /api/release", handler.ReleaseHandle)
	mux.HandleFunc("GET /api/log", handler.LogHandle)
	mux.HandleFunc("POST /api/layer", handler.LayerHandle)

	return mux
}

// StartServer serves until ctx is cancelled, then shuts down gracefully.
func StartServer(ctx context.Context, port int, handler *routes.ServerHandler, dev bool) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           BuildServer(handler, dev),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		slog.InfoContext(logCtx, "Running interface", "port", port)

		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("could not run server: %w", err)
	case <-ctx.Done():
		slog.InfoContext(logCtx, "Shutting down interface")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server: %w", err)
		}

		return nil
	}
}
