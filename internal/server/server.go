package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/aprovados/internal/config"
	"github.com/nfrund/aprovados/internal/handlers"
	"github.com/nfrund/aprovados/internal/middleware"
	"github.com/nfrund/aprovados/internal/module"
	"github.com/nfrund/aprovados/internal/pubsub"
	"github.com/nfrund/aprovados/internal/rendering"
)

// Dependencies holds the services the HTTP server is built from.
type Dependencies struct {
	Config    config.Provider
	Renderer  *rendering.UniversalRenderer
	Publisher pubsub.Publisher
	Echo      *echo.Echo
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E         *echo.Echo
	Cfg       config.Provider
	Publisher pubsub.Publisher
	modules   []module.Module
}

// New creates a new Server instance with the shared middleware stack.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("server: renderer is required")
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.Renderer = deps.Renderer
	e.Validator = handlers.NewValidator()

	setupErrorHandling(e)

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())
	e.Use(echomw.Secure())

	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400, // 1 day
		HttpOnly: true,
		Secure:   deps.Config.GetAppEnv() == "production",
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	return &Server{
		E:         e,
		Cfg:       deps.Config,
		Publisher: deps.Publisher,
	}, nil
}

// setupErrorHandling logs unhandled errors with a stack trace and leaves the
// response to echo's default handler.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			slog.Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		} else if he.Code >= http.StatusInternalServerError {
			slog.Error("Internal Server Error", "error", fmt.Sprint(he.Message), "path", c.Request().URL.Path)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
