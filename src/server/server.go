package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logger "github.com/sirupsen/logrus"

	"exchangenorm/src/builder"
	"exchangenorm/src/handler"
	"exchangenorm/src/registry"
)

// Deps are the loaded registries and builder the routes read from.
type Deps struct {
	Markets    *registry.MarketRegistry
	Currencies *registry.CurrencyRegistry
	Builder    *builder.Builder
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	// === Global Middleware ===
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if !deps.Markets.Loaded() {
			http.Error(w, "markets not loaded", http.StatusServiceUnavailable)
			return
		}
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("/healthcheck error")
		}
	})
	r.Get("/markets/{symbol}", handler.MarketHandler(deps.Markets))
	r.Get("/currencies/{code}", handler.CurrencyHandler(deps.Currencies))
	r.Get("/precision", handler.PrecisionHandler(deps.Builder))
	return r
}

// StartServer serves h until ctx ends or SIGINT/SIGTERM arrives.
func StartServer(ctx context.Context, port string, h http.Handler) {
	addr := ":" + port
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
