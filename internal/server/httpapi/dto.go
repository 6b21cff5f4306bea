package httpapi

import (
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/dmitrijs2005/alumnilink/internal/server/models"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  common.Role `json:"role"`
}

type authResponse struct {
	userResponse
	Token string `json:"token"`
}

type verifyResponse struct {
	ID        string      `json:"id"`
	Role      common.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type dashboardResponse struct {
	Role     common.Role `json:"role"`
	Greeting string      `json:"greeting"`
	Home     string      `json:"home"`
	Views    []string    `json:"views"`
}

type avatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

type avatarUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type avatarDownloadResponse struct {
	URL string `json:"url"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
