package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"SEOAutomation/internal/domain"
)

const shutdownTimeout = 10 * time.Second

// Runner executes one pipeline pass unless another pass is in progress.
type Runner interface {
	TryRun(ctx context.Context, settings domain.Settings, maxItems int) (domain.RunResult, bool)
}

// Server exposes the manual trigger and a health check.
type Server struct {
	runner   Runner
	settings func() domain.Settings
	maxItems int
	logger   *slog.Logger
	e        *echo.Echo
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds the echo instance. maxItems is used when a request does not carry ?max=.
func New(runner Runner, settings func() domain.Settings, maxItems int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{runner: runner, settings: settings, maxItems: maxItems, logger: logger}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Error("http request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Info("http request", attrs...)
			return nil
		},
	}))

	e.GET("/healthz", s.handleHealth)
	e.POST("/api/runs", s.handleRun)

	s.e = e
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRun(c echo.Context) error {
	maxItems := s.maxItems
	if raw := c.QueryParam("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "max must be a non-negative integer"})
		}
		maxItems = n
	}

	result, ok := s.runner.TryRun(c.Request().Context(), s.settings(), maxItems)
	if !ok {
		return c.JSON(http.StatusConflict, errorResponse{Error: "a run is already in progress"})
	}
	return c.JSON(http.StatusOK, result)
}
