package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	infralogger "github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/domain"
	"github.com/mai-repo/Newscraper/internal/handler"
	"github.com/mai-repo/Newscraper/internal/verify"
)

func setupAuthRouter(c *mockCaptcha, i *mockIdentity) *gin.Engine {
	h := handler.NewAuthHandler(c, i, infralogger.NewNop())

	router := newRouter()
	router.POST("/verifyUser", h.VerifyUser)
	router.POST("/userSignIn", h.UserSignIn)
	return router
}

func TestAuthHandler_VerifyUser(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		err        error
		wantStatus int
	}{
		{"verified", "good", nil, http.StatusOK},
		{"rejected", "bad", fmt.Errorf("%w: invalid-input-response", domain.ErrTokenRejected), http.StatusBadRequest},
		{"endpoint down", "good", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(mockCaptcha)
			c.On("Verify", mock.Anything, tt.token).Return(tt.err)
			router := setupAuthRouter(c, new(mockIdentity))

			w := doRequest(t, router, http.MethodPost, "/verifyUser", map[string]string{"token": tt.token})

			assert.Equal(t, tt.wantStatus, w.Code)
			c.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_UserSignIn(t *testing.T) {
	i := new(mockIdentity)
	i.On("Verify", mock.Anything, "valid").Return(&verify.GoogleClaims{
		Email:            "ash@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "42"},
	}, nil)
	i.On("Verify", mock.Anything, "forged").Return(nil, fmt.Errorf("%w: signature is invalid", domain.ErrTokenRejected))
	router := setupAuthRouter(new(mockCaptcha), i)

	w := doRequest(t, router, http.MethodPost, "/userSignIn", map[string]string{"token": "valid"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ash@example.com", decode[map[string]string](t, w)["email"])

	w = doRequest(t, router, http.MethodPost, "/userSignIn", map[string]string{"token": "forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodPost, "/userSignIn", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	i.AssertExpectations(t)
}
