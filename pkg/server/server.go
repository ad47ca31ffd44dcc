package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/faoa-tools/annual-report/pkg/handlers/session"
	reportmiddleware "github.com/faoa-tools/annual-report/pkg/server/middleware"
	"github.com/faoa-tools/annual-report/pkg/services/session"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Sessions *session.Store
}

type Config struct {
	Addr            string
	Password        string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	sessionHandler := handlers.NewHandler(config.Dependencies.Sessions)

	router := chi.NewRouter()

	router.Use(reportmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(reportmiddleware.SharedSecret(config.Password))

		r.Post("/sessions", sessionHandler.CreateSession)
		r.Route("/sessions/{session}", func(r chi.Router) {
			r.Get("/summary", sessionHandler.GetSummary)
			r.Put("/summary", sessionHandler.UpdateSummary)
			r.Put("/reclassification", sessionHandler.SetReclassification)
			r.Post("/report", sessionHandler.GenerateReport)
			r.Get("/report/download", sessionHandler.DownloadReport)
			r.Get("/summary/download", sessionHandler.DownloadSummary)
		})
	})

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Router exposes the configured mux, mainly for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
