package api

import (
	"context"
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/iksnae/support-analytics/internal"
)

// ResponseData is the envelope every endpoint answers with
type ResponseData struct {
	Status  int         `json:"status"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Results interface{} `json:"results,omitempty"`
}

// DashboardProvider builds dashboards on demand
type DashboardProvider interface {
	Dashboard(ctx context.Context, filter internal.StatusFilter) (*internal.Dashboard, error)
	SourceName() string
}

// Server exposes dashboards over HTTP and a websocket
type Server struct {
	app *fiber.App
	svc DashboardProvider
}

// NewServer creates the fiber app and registers every route
func NewServer(svc DashboardProvider) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "support-analytics",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Output: internal.Logger().StandardLog().Writer(),
		Format: "${status} ${method} ${path} ${latency}\n",
	}))

	s := &Server{app: app, svc: svc}

	app.Get("/healthz", s.handleHealth)

	api := app.Group("/api")
	api.Get("/dashboard", s.handleDashboard)
	api.Get("/stats", s.handleStats)
	api.Get("/categories", s.handleCategories)
	api.Get("/sentiments", s.handleSentiments)
	api.Get("/issues", s.handleIssues)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/dashboard", websocket.New(s.handleDashboardSocket))

	return s
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called
func (s *Server) Listen(addr string) error {
	internal.LogInfo("Listening on %s", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for open requests until ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(ResponseData{
		Status:  code,
		Code:    "ERROR",
		Message: err.Error(),
	})
}
