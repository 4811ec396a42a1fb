package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

// LoginRequest carries the user's credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest carries the registration payload
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authClient struct {
	client *Client
	logger *zap.Logger
}

// NewAuthClient creates a client for the remote auth service
func NewAuthClient(client *Client, logger *zap.Logger) *authClient {
	return &authClient{
		client: client,
		logger: logger,
	}
}

// Login exchanges credentials for a bearer token plus the user profile
func (c *authClient) Login(ctx context.Context, req LoginRequest) (*domain.Credential, error) {
	body, err := c.client.doJSON(ctx, http.MethodPost, "/api/auth/login", "", req)
	if err != nil {
		return nil, err
	}
	return credentialFromBody(body)
}

// Signup registers a new account. The auth service answers with the same
// token-bearing body as login.
func (c *authClient) Signup(ctx context.Context, req SignupRequest) (*domain.Credential, error) {
	body, err := c.client.doJSON(ctx, http.MethodPost, "/api/auth/signup", "", req)
	if err != nil {
		return nil, err
	}
	return credentialFromBody(body)
}

// Me fetches the current user's profile
func (c *authClient) Me(ctx context.Context, token string) (json.RawMessage, error) {
	return c.client.doJSON(ctx, http.MethodGet, "/api/auth/me", token, nil)
}

// UpdateProfile updates the current user's profile
func (c *authClient) UpdateProfile(ctx context.Context, token string, profile map[string]interface{}) (json.RawMessage, error) {
	return c.client.doJSON(ctx, http.MethodPut, "/api/auth/profile", token, profile)
}

// VerifyToken reports whether the stored token is still accepted by the auth
// service
func (c *authClient) VerifyToken(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	if _, err := c.Me(ctx, token); err != nil {
		c.logger.Info("Stored token failed verification", zap.Error(err))
		return false
	}
	return true
}

func credentialFromBody(body []byte) (*domain.Credential, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &errors.ErrMalformedResponse{Detail: err.Error()}
	}
	if resp.Token == "" {
		return nil, &errors.ErrMalformedResponse{Detail: "auth response missing token"}
	}

	return &domain.Credential{
		Token:   resp.Token,
		Profile: body,
	}, nil
}
