// Package web serves the country directory over HTTP: server-rendered
// listing and detail pages plus a JSON API, both backed by a
// countrybed.CountryBed and driven through its ViewState reducer.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/andreiashu/countrybed"
)

const shutdownTimeout = 10 * time.Second

// Options configure a Server.
type Options struct {
	Addr     string      // listen address, e.g. "localhost:8080"
	DarkMode bool        // theme for visitors without a theme cookie
	Logger   *zap.Logger // request and lifecycle logging; nil disables it
}

// Server is the web directory.
type Server struct {
	bed    *countrybed.CountryBed
	echo   *echo.Echo
	opts   Options
	logger *zap.Logger
}

// New builds a Server with all routes registered.
func New(bed *countrybed.CountryBed, opts Options) (*Server, error) {
	if bed == nil {
		return nil, errors.New("web: nil CountryBed")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Renderer = renderer
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	s := &Server{bed: bed, echo: e, opts: opts, logger: logger}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.listingPage)
	s.echo.GET("/country/:code", s.detailPage)
	s.echo.POST("/theme", s.toggleTheme)
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	api := s.echo.Group("/api")
	api.GET("/countries", s.listCountries)
	api.GET("/countries/:code", s.getCountry)
	api.GET("/countries/:code/closest", s.closestCountries)
	api.GET("/regions", s.listRegions)
	api.GET("/suggest", s.suggest)
	api.GET("/nearest", s.nearest)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web directory listening", zap.String("addr", s.opts.Addr))
		errCh <- s.echo.Start(s.opts.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", s.opts.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("web directory shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving %s: %w", s.opts.Addr, err)
	}
	return nil
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Debug("request", fields...)
			return nil
		},
	})
}
