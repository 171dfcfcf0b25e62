package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	infraerrors "github.com/mai-repo/Newscraper/infrastructure/errors"
	infralogger "github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/domain"
)

// errorMessages are the client-facing texts for one operation.
type errorMessages struct {
	notFound string
	conflict string
	failed   string
}

// respondError writes the status and {"error": ...} body err maps to.
// Unclassified errors are logged, with the upstream status when an outbound
// call failed, and answered with a generic 500.
func respondError(c *gin.Context, log infralogger.Logger, err error, msgs errorMessages) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgs.notFound})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgs.conflict})
	case errors.Is(err, domain.ErrTokenRejected):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
	default:
		fields := []infralogger.Field{
			infralogger.String("path", c.FullPath()),
			infralogger.Error(err),
		}
		if status, ok := infraerrors.GetHTTPStatusCode(err); ok {
			fields = append(fields, infralogger.Int("upstream_status", status))
		}
		log.Error(msgs.failed, fields...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgs.failed})
	}
}

// badRequest answers 400 with message.
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
