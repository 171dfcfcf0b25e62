// Package errors describes failed responses from the third-party APIs the
// scraper calls.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// MinErrorStatusCode is the minimum HTTP status code considered an error
	MinErrorStatusCode = 400

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 4 << 10
)

// HTTPError represents a non-success upstream response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	Message    string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error (%s): %s", e.Status, e.Message)
	}
	return "HTTP error: " + e.Status
}

// ParseHTTPError turns a response with an error status into an *HTTPError.
// It returns nil for statuses below 400. Messages are taken from the common
// JSON shapes ({"error": ...}, {"message": ...}, OAuth's error_description)
// and fall back to the raw body.
func ParseHTTPError(resp *http.Response) error {
	if resp.StatusCode < MinErrorStatusCode {
		return nil
	}

	httpErr := &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	if httpErr.Status == "" {
		httpErr.Status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		httpErr.Message = fmt.Sprintf("failed to read error response body: %v", err)
		return httpErr
	}
	httpErr.Body = strings.TrimSpace(string(bodyBytes))

	var jsonErr struct {
		Error            any    `json:"error"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	if json.Unmarshal(bodyBytes, &jsonErr) == nil {
		switch e := jsonErr.Error.(type) {
		case string:
			httpErr.Message = e
		case map[string]any:
			if msg, ok := e["message"].(string); ok {
				httpErr.Message = msg
			}
		}
		if jsonErr.ErrorDescription != "" {
			httpErr.Message = strings.TrimSpace(httpErr.Message + " " + jsonErr.ErrorDescription)
		}
		if httpErr.Message == "" {
			httpErr.Message = jsonErr.Message
		}
	}

	if httpErr.Message == "" {
		httpErr.Message = httpErr.Body
	}
	return httpErr
}

// GetHTTPStatusCode extracts the status code from anywhere in err's chain.
func GetHTTPStatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}
