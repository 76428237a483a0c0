package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/deppfellow/fitlog/internal/config"
	"github.com/deppfellow/fitlog/internal/handler"
	"github.com/deppfellow/fitlog/internal/logger"
	"github.com/deppfellow/fitlog/internal/middleware"
	"github.com/deppfellow/fitlog/internal/repository"
	"github.com/deppfellow/fitlog/internal/router"
	"github.com/deppfellow/fitlog/internal/server"
	"github.com/deppfellow/fitlog/internal/service"
)

// shutdownTimeout is how long inflight requests get to finish before
// the process exits.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// config.Load exits on invalid config; this covers future
		// error-returning paths.
		panic(err)
	}

	log, loggerService, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(s)

	services, err := service.NewServices(s, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	e := router.New(s, handlers, middlewares)
	s.SetupHTTPServer(e)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		os.Exit(1)
	}

	log.Info().Msg("shutdown complete")
}
