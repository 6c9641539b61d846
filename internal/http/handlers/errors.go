package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busbackend/internal/domain"
	"busbackend/internal/http/middleware"
)

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"message":    message,
		"code":       code,
		"details":    details,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Seat conflicts
// include the offending seats so the counter UI can highlight them.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsSeatConflict(err):
		respondError(c, http.StatusConflict, "seat_conflict", err.Error(), gin.H{
			"conflictingSeats": domain.ConflictSeats(err),
		})
	case domain.IsFareUndefined(err):
		respondError(c, http.StatusBadRequest, "fare_undefined", err.Error(), nil)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsUnavailable(err):
		respondError(c, http.StatusServiceUnavailable, "storage_unavailable", "storage sedang tidak tersedia, coba lagi", nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
