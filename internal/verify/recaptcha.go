// Package verify checks reCAPTCHA responses and Google Sign-In ID tokens.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	infraerrors "github.com/mai-repo/Newscraper/infrastructure/errors"
	"github.com/mai-repo/Newscraper/internal/domain"
)

// RecaptchaVerifier calls the reCAPTCHA siteverify endpoint.
type RecaptchaVerifier struct {
	client   *http.Client
	endpoint string
	secret   string
}

// NewRecaptchaVerifier creates a verifier posting to endpoint with secret.
func NewRecaptchaVerifier(client *http.Client, endpoint, secret string) *RecaptchaVerifier {
	return &RecaptchaVerifier{client: client, endpoint: endpoint, secret: secret}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify returns nil when the response token is accepted and an error
// wrapping domain.ErrTokenRejected when it is not. Any other error means
// the endpoint could not be consulted.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty response token", domain.ErrTokenRejected)
	}

	form := url.Values{"secret": {v.secret}, "response": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("call siteverify: %w", err)
	}
	defer resp.Body.Close()

	if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
		return fmt.Errorf("siteverify: %w", httpErr)
	}

	var body siteverifyResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode siteverify: %w", err)
	}

	if !body.Success {
		return fmt.Errorf("%w: %s", domain.ErrTokenRejected, strings.Join(body.ErrorCodes, ","))
	}
	return nil
}
