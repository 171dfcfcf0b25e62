package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	infralogger "github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/domain"
	"github.com/mai-repo/Newscraper/internal/verify"
)

// CaptchaVerifier checks a reCAPTCHA response token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) error
}

// IdentityVerifier checks a Google ID token.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*verify.GoogleClaims, error)
}

// AuthHandler serves the stateless token verification routes.
type AuthHandler struct {
	captcha  CaptchaVerifier
	identity IdentityVerifier
	logger   infralogger.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(captcha CaptchaVerifier, identity IdentityVerifier, log infralogger.Logger) *AuthHandler {
	return &AuthHandler{
		captcha:  captcha,
		identity: identity,
		logger:   log,
	}
}

type tokenRequest struct {
	Token string `json:"token"`
}

// VerifyUser checks a reCAPTCHA token. A rejected token is a 400; an
// unreachable verification endpoint is a 500.
func (h *AuthHandler) VerifyUser(c *gin.Context) {
	var req tokenRequest
	_ = c.ShouldBindJSON(&req)

	err := h.captcha.Verify(c.Request.Context(), req.Token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "reCAPTCHA verified successfully!"})
	case errors.Is(err, domain.ErrTokenRejected):
		h.logger.Debug("reCAPTCHA rejected", infralogger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to verify reCAPTCHA."})
	default:
		h.logger.Error("reCAPTCHA verification unavailable", infralogger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server issue cannot validate at this time!"})
	}
}

// UserSignIn checks a Google ID token.
func (h *AuthHandler) UserSignIn(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		badRequest(c, "No token provided")
		return
	}

	claims, err := h.identity.Verify(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, h.logger, err, errorMessages{failed: "Cannot validate token at this time"})
		return
	}

	h.logger.Info("Google sign-in accepted", infralogger.String("subject", claims.Subject))

	c.JSON(http.StatusOK, gin.H{
		"message": "Google Sign-In successful!",
		"email":   claims.Email,
		"name":    claims.Name,
	})
}
