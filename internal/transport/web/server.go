package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jkruckivey/assessments/internal/config"
	"github.com/jkruckivey/assessments/pkg/log"
)

// Server is the HTTP transport. It implements srv.Service.
type Server struct {
	echo *echo.Echo
	cfg  *config.ServerConfig
}

func NewServer(ctx context.Context, cfg *config.ServerConfig, h *Handler) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(withLogger(log.WithComponent(ctx, "http")))
	e.Use(requestLogger())
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeout(cfg.RequestTimeout))
	}
	e.Use(newSessionSigner(cfg.SecretKey, cfg.SecureCookies).middleware)

	h.RegisterRoutes(e)

	return &Server{echo: e, cfg: cfg}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr()).Msg("http server listening")
	if err := s.echo.Start(s.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
