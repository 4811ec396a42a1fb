package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/backend"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/session"
	"github.com/jafarshop/storefront/pkg/errors"
)

// AuthAPI is the remote auth collaborator consumed by the auth handlers
type AuthAPI interface {
	Login(ctx context.Context, req backend.LoginRequest) (*domain.Credential, error)
	Signup(ctx context.Context, req backend.SignupRequest) (*domain.Credential, error)
	Me(ctx context.Context, token string) (json.RawMessage, error)
	UpdateProfile(ctx context.Context, token string, profile map[string]interface{}) (json.RawMessage, error)
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest is the registration payload
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// HandleLogin handles POST /v1/auth/login
func HandleLogin(auth AuthAPI, sess *session.Session, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cred, err := auth.Login(c.Request.Context(), backend.LoginRequest{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			logger.Info("Login failed", zap.Error(err))
			checkoutError(c, err)
			return
		}

		if err := sess.Store(c.Request.Context(), cred); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store credential"})
			return
		}

		c.Data(http.StatusOK, "application/json", cred.Profile)
	}
}

// HandleSignup handles POST /v1/auth/signup
func HandleSignup(auth AuthAPI, sess *session.Session, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cred, err := auth.Signup(c.Request.Context(), backend.SignupRequest{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			logger.Info("Signup failed", zap.Error(err))
			checkoutError(c, err)
			return
		}

		if err := sess.Store(c.Request.Context(), cred); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store credential"})
			return
		}

		c.Data(http.StatusCreated, "application/json", cred.Profile)
	}
}

// HandleLogout handles POST /v1/auth/logout. Logout is client-side only: the
// stored credential is dropped, no remote call is made.
func HandleLogout(sess *session.Session, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sess.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear credential"})
			return
		}

		logger.Info("Session logged out")
		c.Status(http.StatusNoContent)
	}
}

// HandleMe handles GET /v1/auth/me. When the auth service cannot be reached
// the profile captured at login is served instead, so the storefront keeps
// working offline.
func HandleMe(auth AuthAPI, sess *session.Session, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, err := sess.Credential(c.Request.Context())
		if err != nil || cred.Token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		profile, err := auth.Me(c.Request.Context(), cred.Token)
		if err != nil {
			if _, ok := err.(*errors.ErrTransport); ok && len(cred.Profile) > 0 {
				logger.Info("Auth service unreachable, serving stored profile", zap.Error(err))
				c.Data(http.StatusOK, "application/json", cred.Profile)
				return
			}
			logger.Info("Profile fetch failed", zap.Error(err))
			checkoutError(c, err)
			return
		}

		c.Data(http.StatusOK, "application/json", profile)
	}
}

// HandleUpdateProfile handles PUT /v1/auth/profile. The updated profile is
// also written back to the stored credential so later offline reads stay
// current.
func HandleUpdateProfile(auth AuthAPI, sess *session.Session, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := sess.Token(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		var req map[string]interface{}
		if err := c.ShouldBindJSON(&req); err != nil || len(req) == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "profile payload required"})
			return
		}

		profile, err := auth.UpdateProfile(c.Request.Context(), token, req)
		if err != nil {
			logger.Info("Profile update failed", zap.Error(err))
			checkoutError(c, err)
			return
		}

		if err := sess.Store(c.Request.Context(), &domain.Credential{Token: token, Profile: profile}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store credential"})
			return
		}

		c.Data(http.StatusOK, "application/json", profile)
	}
}
