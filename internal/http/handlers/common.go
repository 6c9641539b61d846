package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"busbackend/internal/config"
	"busbackend/internal/domain"
	"busbackend/internal/http/middleware"
	"busbackend/internal/services"
)

// Handlers bundles the wired services behind the HTTP surface.
type Handlers struct {
	Env      config.Env
	DB       *sql.DB
	Users    *services.UserService
	Routes   *services.RouteService
	Bookings *services.BookingService
	Docs     services.DocsService
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return false
	}
	return true
}

func pathID(c *gin.Context) (domain.ID, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return 0, false
	}
	return domain.ID(id), true
}

func actorOrAbort(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return domain.Actor{}, false
	}
	return actor, true
}
