package verify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	"github.com/mai-repo/Newscraper/internal/domain"
)

const (
	keyRefreshInterval = time.Hour
	// An unknown kid may refresh the key set at most this often.
	unknownKIDInterval = 5 * time.Minute
	// Unknown-kid refreshes that would wait longer than this fail instead.
	unknownKIDWaitMax = time.Second
)

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// GoogleClaims are the ID token claims the API uses.
type GoogleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	jwt.RegisteredClaims
}

// GoogleVerifier validates Google ID tokens against Google's published
// signing keys. The key set is fetched on first use, refreshed hourly in the
// background and at most once per five minutes when a token names an unknown
// key id.
type GoogleVerifier struct {
	client   *http.Client
	certsURL string
	clientID string

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	keys keyfunc.Keyfunc
}

// NewGoogleVerifier creates a verifier accepting tokens issued to clientID.
// Close stops the background key refresh.
func NewGoogleVerifier(client *http.Client, certsURL, clientID string) *GoogleVerifier {
	ctx, cancel := context.WithCancel(context.Background())
	return &GoogleVerifier{
		client:   client,
		certsURL: certsURL,
		clientID: clientID,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Close stops refreshing the key set.
func (v *GoogleVerifier) Close() {
	v.cancel()
}

// Verify checks the signature, audience, issuer and expiry of token.
// Rejected tokens return an error wrapping domain.ErrTokenRejected; an empty
// token is a validation error; anything else is an infrastructure failure.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*GoogleClaims, error) {
	if token == "" {
		return nil, domain.NewValidationError("token", "is required")
	}
	if v.clientID == "" {
		return nil, errors.New("google client id is not configured")
	}

	keys, err := v.keySet()
	if err != nil {
		return nil, err
	}

	claims := &GoogleClaims{}
	_, err = jwt.ParseWithClaims(token, claims, keys.KeyfuncCtx(ctx),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenRejected, err)
	}

	if !googleIssuers[claims.Issuer] {
		return nil, fmt.Errorf("%w: unexpected issuer %q", domain.ErrTokenRejected, claims.Issuer)
	}

	return claims, nil
}

// keySet loads the remote key set once. A failed first fetch is returned
// and retried on the next call.
func (v *GoogleVerifier) keySet() (keyfunc.Keyfunc, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.keys != nil {
		return v.keys, nil
	}

	storage, err := jwkset.NewStorageFromHTTP(v.certsURL, jwkset.HTTPClientStorageOptions{
		Client:              v.client,
		Ctx:                 v.ctx,
		RefreshInterval:     keyRefreshInterval,
		RefreshErrorHandler: func(context.Context, error) {},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch google certs: %w", err)
	}

	client, err := jwkset.NewHTTPClient(jwkset.HTTPClientOptions{
		HTTPURLs:          map[string]jwkset.Storage{v.certsURL: storage},
		RefreshUnknownKID: rate.NewLimiter(rate.Every(unknownKIDInterval), 1),
		RateLimitWaitMax:  unknownKIDWaitMax,
	})
	if err != nil {
		return nil, fmt.Errorf("google key set: %w", err)
	}

	keys, err := keyfunc.New(keyfunc.Options{Ctx: v.ctx, Storage: client})
	if err != nil {
		return nil, fmt.Errorf("google keyfunc: %w", err)
	}

	v.keys = keys
	return keys, nil
}
