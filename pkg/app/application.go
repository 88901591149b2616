package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shareit/pkg/config"
	"shareit/pkg/contracts"
	"shareit/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

// Application assembles the router, middleware chain and HTTP server, and
// owns the run/shutdown lifecycle.
type Application struct {
	cfg    *config.Config
	router *httprouter.Router
	server *http.Server

	// closers run during shutdown, after the HTTP server has drained.
	closers []func() error
}

func New(cfg *config.Config) *Application {
	return &Application{
		cfg:    cfg,
		router: httprouter.New(),
	}
}

func (a *Application) RegisterHandlers(handlers ...contracts.Handler) {
	for _, h := range handlers {
		h.RegisterRoutes(a.router)
	}
}

// OnShutdown registers a cleanup hook, such as a Kafka producer close.
func (a *Application) OnShutdown(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Run blocks until SIGINT/SIGTERM, then drains in-flight requests and runs
// the shutdown hooks.
func (a *Application) Run() {
	log := a.cfg.Log

	var handler http.Handler = a.router
	handler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(handler)
	handler = middleware.RequestTimeout(a.cfg.RequestTimeout)(handler)
	handler = middleware.RequestLogging(log)(handler)
	handler = middleware.Recovery(log)(handler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", "port", a.cfg.Port)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		log.Error("HTTP server failed", "error", err)
	}

	a.shutdown()
}

func (a *Application) shutdown() {
	log := a.cfg.Log

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	}

	for _, closer := range a.closers {
		if err := closer(); err != nil {
			log.Error("shutdown hook failed", "error", err)
		}
	}

	a.cfg.GracefulShutdown()
	log.Info("shutdown complete")
}
