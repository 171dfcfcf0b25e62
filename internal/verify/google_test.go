package verify_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infrahttp "github.com/mai-repo/Newscraper/infrastructure/http"
	"github.com/mai-repo/Newscraper/internal/domain"
	"github.com/mai-repo/Newscraper/internal/verify"
)

const testClientID = "client-123.apps.googleusercontent.com"

type jwksServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newJWKSServer(t *testing.T, kid string, key *rsa.PublicKey) *jwksServer {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"keys": []map[string]string{{
			"kid": kid,
			"kty": "RSA",
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}},
	})
	require.NoError(t, err)

	s := &jwksServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}

func newVerifier(t *testing.T, certsURL string) *verify.GoogleVerifier {
	t.Helper()

	v := verify.NewGoogleVerifier(infrahttp.NewClient(nil), certsURL, testClientID)
	t.Cleanup(v.Close)
	return v
}

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, mutate func(*verify.GoogleClaims)) string {
	t.Helper()

	claims := &verify.GoogleClaims{
		Email:         "ash@example.com",
		EmailVerified: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://accounts.google.com",
			Subject:   "1234567890",
			Audience:  jwt.ClaimStrings{testClientID},
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	if mutate != nil {
		mutate(claims)
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	signed, err := tok.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestGoogleVerifier_Verify(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	srv := newJWKSServer(t, "k1", &key.PublicKey)
	v := newVerifier(t, srv.URL)

	claims, err := v.Verify(context.Background(), signToken(t, key, "k1", nil))
	require.NoError(t, err)
	assert.Equal(t, "ash@example.com", claims.Email)

	_, err = v.Verify(context.Background(), signToken(t, key, "k1", nil))
	require.NoError(t, err)
	assert.Equal(t, int32(1), srv.hits.Load(), "keys are cached")
}

func TestGoogleVerifier_Rejects(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	otherKey := newKey(t)
	srv := newJWKSServer(t, "k1", &key.PublicKey)
	v := newVerifier(t, srv.URL)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong audience", signToken(t, key, "k1", func(c *verify.GoogleClaims) {
			c.Audience = jwt.ClaimStrings{"someone-else"}
		})},
		{"expired", signToken(t, key, "k1", func(c *verify.GoogleClaims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		})},
		{"foreign issuer", signToken(t, key, "k1", func(c *verify.GoogleClaims) {
			c.Issuer = "https://evil.example"
		})},
		{"wrong signing key", signToken(t, otherKey, "k1", nil)},
		{"unknown key id", signToken(t, key, "k2", nil)},
		{"garbage", "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, domain.ErrTokenRejected)
		})
	}
}

func TestGoogleVerifier_EmptyToken(t *testing.T) {
	t.Parallel()

	v := newVerifier(t, "http://127.0.0.1:0")

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGoogleVerifier_CertsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	key := newKey(t)
	v := newVerifier(t, srv.URL)

	_, err := v.Verify(context.Background(), signToken(t, key, "k1", nil))
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrTokenRejected))
}

func TestGoogleVerifier_UnknownKeyIDRefreshIsRateLimited(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	srv := newJWKSServer(t, "k1", &key.PublicKey)
	v := newVerifier(t, srv.URL)

	for range 10 {
		_, err := v.Verify(context.Background(), signToken(t, key, "rotated", nil))
		require.ErrorIs(t, err, domain.ErrTokenRejected)
	}

	// One initial fetch plus at most one refresh for the unknown key id.
	assert.LessOrEqual(t, srv.hits.Load(), int32(2))

	_, err := v.Verify(context.Background(), signToken(t, key, "k1", nil))
	require.NoError(t, err)
}
