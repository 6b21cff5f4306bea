package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/dmitrijs2005/alumnilink/internal/server/services"
	"github.com/labstack/echo/v4"
)

func (s *Server) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	role, err := common.ParseRole(req.Role)
	if err != nil {
		return err
	}

	sess, err := s.users.Signup(c.Request().Context(), services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{userResponse: toUserResponse(sess.User), Token: sess.Token})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	sess, err := s.users.Login(c.Request().Context(), services.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}

	s.logger.Info(c.Request().Context(), "Logged in", "user_id", sess.User.ID)
	return c.JSON(http.StatusOK, authResponse{userResponse: toUserResponse(sess.User), Token: sess.Token})
}

func (s *Server) me(c echo.Context) error {
	user, err := s.users.Me(c.Request().Context(), identityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) verify(c echo.Context) error {
	id := identityFrom(c)
	return c.JSON(http.StatusOK, verifyResponse{ID: id.UserID, Role: id.Role, ExpiresAt: id.ExpiresAt})
}

func (s *Server) logout(c echo.Context) error {
	if err := s.users.Logout(c.Request().Context(), identityFrom(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong")
}

func (s *Server) dashboard(c echo.Context) error {
	user, err := s.users.Me(c.Request().Context(), identityFrom(c))
	if err != nil {
		return err
	}

	home := user.Role.HomePath()
	views := make([]string, 0, len(common.DashboardViews))
	for _, v := range common.DashboardViews {
		views = append(views, home+"/"+v)
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Role:     user.Role,
		Greeting: fmt.Sprintf("Welcome back, %s!", user.Name),
		Home:     home,
		Views:    views,
	})
}

func (s *Server) avatarUpload(c echo.Context) error {
	var req avatarUploadRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	up, err := s.avatars.PresignUpload(c.Request().Context(), identityFrom(c).UserID, req.ContentType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, avatarUploadResponse{Key: up.Key, URL: up.URL})
}

func (s *Server) avatarDownload(c echo.Context) error {
	url, err := s.avatars.PresignDownload(c.Request().Context(), c.Param("*"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, avatarDownloadResponse{URL: url})
}
