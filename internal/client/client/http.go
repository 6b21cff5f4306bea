package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/dmitrijs2005/alumnilink/internal/logging"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

type authResponse struct {
	User
	Token string `json:"token"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// AvatarUpload is a presigned upload target handed out by the server.
type AvatarUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// HTTPBackend implements Backend against the AlumniLink HTTP API.
type HTTPBackend struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

var _ Backend = (*HTTPBackend)(nil)

// NewHTTPBackend creates an HTTPBackend for baseURL. If httpClient is nil,
// http.DefaultClient is used; deadlines come from the request contexts.
func NewHTTPBackend(baseURL string, httpClient *http.Client, logger logging.Logger) *HTTPBackend {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With("module", "http_backend"),
	}
}

func (b *HTTPBackend) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	var resp authResponse
	if err := b.do(ctx, http.MethodPost, "/auth/signup", "", req, &resp); err != nil {
		return nil, err
	}
	return &AuthResult{User: resp.User, Token: resp.Token}, nil
}

func (b *HTTPBackend) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	in := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := b.do(ctx, http.MethodPost, "/auth/login", "", in, &resp); err != nil {
		return nil, err
	}
	return &AuthResult{User: resp.User, Token: resp.Token}, nil
}

func (b *HTTPBackend) Restore(ctx context.Context, token string) (*User, error) {
	var u User
	if err := b.do(ctx, http.MethodGet, "/auth/me", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (b *HTTPBackend) Verify(ctx context.Context, token string) (*TokenInfo, error) {
	var ti TokenInfo
	if err := b.do(ctx, http.MethodPost, "/auth/verify", token, nil, &ti); err != nil {
		return nil, err
	}
	return &ti, nil
}

func (b *HTTPBackend) Logout(ctx context.Context, token string) error {
	return b.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// Ping checks that the API answers.
func (b *HTTPBackend) Ping(ctx context.Context) error {
	return b.do(ctx, http.MethodGet, "/api/ping", "", nil, nil)
}

// PresignAvatarUpload requests an upload URL for the caller's profile picture.
func (b *HTTPBackend) PresignAvatarUpload(ctx context.Context, token, contentType string) (*AvatarUpload, error) {
	var up AvatarUpload
	in := map[string]string{"content_type": contentType}
	if err := b.do(ctx, http.MethodPost, "/api/profile/avatar", token, in, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

// AvatarURL returns a download URL for an avatar key.
func (b *HTTPBackend) AvatarURL(ctx context.Context, token, key string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	path := "/api/profile/avatar/" + (&url.URL{Path: key}).EscapedPath()
	if err := b.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// do sends one request and decodes a 2xx JSON answer into out (when non-nil).
func (b *HTTPBackend) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.logger.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
		}
		return nil
	}

	msg := readMessage(resp.Body)
	b.logger.Debug(ctx, "request rejected", "method", method, "path", path, "status", resp.StatusCode, "message", msg)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	default:
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
}

func readMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var er errorResponse
	if err := json.Unmarshal(data, &er); err == nil && er.Message != "" {
		return er.Message
	}
	return strings.TrimSpace(string(data))
}

// IsAPIError reports whether err carries a user-facing server message.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}
