package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/learnly/course-platform/internal/infrastructure/config"
	"github.com/learnly/course-platform/internal/web/handler"
	"github.com/learnly/course-platform/internal/web/proxy"
	"github.com/learnly/course-platform/internal/web/session"
	"github.com/learnly/course-platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// The presentation-tier server: renders pages, proxies /api/* to the
// backend, and never touches the signing secret.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	sessions := session.NewFacade(cfg.Web.APIBaseURL, log)
	pages := handler.NewPageHandler(sessions)

	apiProxy, err := proxy.New(cfg.Web.APIBaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid API_BASE_URL")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	e.GET("/", pages.Dashboard)
	e.GET("/login", pages.Login)
	e.Any("/api/*", echo.WrapHandler(apiProxy))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Web.Port).Str("api", cfg.Web.APIBaseURL).Msg("web server starting")
		if err := e.Start(":" + cfg.Web.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("web server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}
