package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Message string `json:"message"`
}

// statusFor maps service errors to an HTTP status and a client-facing message.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code, fmt.Sprint(he.Message)
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "Not authorized"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, common.ErrStorageDisabled):
		return http.StatusServiceUnavailable, "Object storage is not configured"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed", "error", err, "uri", c.Request().RequestURI)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorResponse{Message: msg})
	}
	if err != nil {
		s.logger.Error(c.Request().Context(), "error response failed", "error", err)
	}
}
