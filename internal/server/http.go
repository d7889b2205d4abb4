package server

import (
	"errors"
	"net/http"

	"github.com/fekuna/marketplace-catalog-service/internal/apperror"
	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	"github.com/fekuna/marketplace-catalog-service/internal/middleware"
	"github.com/fekuna/marketplace-catalog-service/internal/validation"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Routes is implemented by each domain's HTTP handler.
type Routes interface {
	Register(g *echo.Group)
}

type HTTPConfig struct {
	ServiceName string
	Registry    *prometheus.Registry
}

// NewHTTPServer wires the shared middleware stack, the operational endpoints
// and the given domain routes onto a fresh echo instance.
func NewHTTPServer(cfg HTTPConfig, log logger.ZapLogger, routes ...Routes) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = ErrorHandler(log)

	e.Use(middleware.RequestLogger(log))
	if cfg.Registry != nil {
		e.Use(middleware.NewHTTPMetrics(cfg.ServiceName, cfg.Registry).Middleware())
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}
	// Innermost, so a panicking handler is still logged and counted as a 500.
	e.Use(echomw.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	api := e.Group("")
	for _, r := range routes {
		r.Register(api)
	}
	return e
}

// ErrorHandler renders every failure as {"error": message}. Internal errors
// are logged with their cause and reported with a generic message.
func ErrorHandler(base logger.ZapLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := apperror.HTTPStatus(err)
		msg := apperror.PublicMessage(err)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			msg = http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		} else if apperror.KindOf(err) == apperror.KindInternal {
			logger.FromContext(c.Request().Context(), base).Error("request failed",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, echo.Map{"error": msg})
		}
		if writeErr != nil {
			logger.FromContext(c.Request().Context(), base).Error("failed to write error response", zap.Error(writeErr))
		}
	}
}
