package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/dmitrijs2005/alumnilink/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const identityKey = "identity"

// bearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// authenticate resolves the bearer credential and stores the identity on the
// echo context.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(common.AuthorizationHeader))
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
		}

		id, err := s.users.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(identityKey, id)
		return next(c)
	}
}

func identityFrom(c echo.Context) *services.Identity {
	id, _ := c.Get(identityKey).(*services.Identity)
	return id
}

// requireRole rejects authenticated users of any other role with 403.
func requireRole(role common.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := identityFrom(c)
			if id == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
			}
			if id.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("Access forbidden: %s role required", role))
			}
			return next(c)
		}
	}
}

// accessLog writes one line per request through the server logger.
func (s *Server) accessLog() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				args = append(args, "error", v.Error)
			}
			s.logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	})
}
