// Package httpapi exposes the AlumniLink auth API over HTTP/JSON using echo.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/dmitrijs2005/alumnilink/internal/logging"
	"github.com/dmitrijs2005/alumnilink/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// AvatarPresigner issues presigned object storage URLs for profile pictures.
type AvatarPresigner interface {
	PresignUpload(ctx context.Context, userID, contentType string) (*services.AvatarUpload, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

type Server struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	avatars AvatarPresigner
	echo    *echo.Echo
}

func NewServer(address string, l logging.Logger, us *services.UserService, av AvatarPresigner, corsOrigins []string) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		avatars: av,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.accessLog())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{common.AuthorizationHeader, echo.HeaderContentType},
	}))

	s.echo = e
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo

	// /api/auth is kept as an alias of /auth for older web clients.
	for _, prefix := range []string{"/auth", "/api/auth"} {
		g := e.Group(prefix)
		g.POST("/signup", s.signup)
		g.POST("/login", s.login)
		g.GET("/me", s.me, s.authenticate)
		g.POST("/verify", s.verify, s.authenticate)
		g.POST("/logout", s.logout, s.authenticate)
	}

	api := e.Group("/api")
	api.GET("/ping", s.ping)

	protected := api.Group("", s.authenticate)
	protected.GET("/student/dashboard", s.dashboard, requireRole(common.RoleStudent))
	protected.GET("/alumni/dashboard", s.dashboard, requireRole(common.RoleAlumni))
	protected.POST("/profile/avatar", s.avatarUpload)
	protected.GET("/profile/avatar/*", s.avatarDownload)
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
