// Package server assembles the HTTP surface around the conversion pipeline.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/classcal/classcal/internal/profile"
	"github.com/classcal/classcal/server/middleware"
	apiv1 "github.com/classcal/classcal/server/router/api/v1"
	"github.com/classcal/classcal/server/service/schedule"
	"github.com/classcal/classcal/store"
)

// maxUploadSize bounds the multipart body; schedule photos are small.
const maxUploadSize = "16M"

// Server is the HTTP server for the conversion API.
type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(p *profile.Profile, fileStore *store.FileStore, scheduleService *schedule.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     p.Origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(echomw.BodyLimit(maxUploadSize))
	e.Use(middleware.NewRateLimiter(p.RateLimitRPS, p.RateLimitBurst).Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Schedule to Calendar backend is running.")
	})

	apiv1.NewAPIV1Service(p, fileStore, scheduleService).RegisterRoutes(e)

	return &Server{
		Profile:    p,
		echoServer: e,
	}
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echoServer
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	return s.echoServer.Start(fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port))
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echoServer.Shutdown(ctx)
}
