package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busbackend/internal/domain/models"
)

// GET /api/routes
func (h *Handlers) ListRoutes(c *gin.Context) {
	routes, err := h.Routes.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GET /api/routes/:id
func (h *Handlers) GetRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	route, err := h.Routes.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// POST /api/routes
func (h *Handlers) CreateRoute(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req models.Route
	if !BindJSONOrError(c, &req) {
		return
	}
	route, err := h.Routes.Create(c.Request.Context(), actor, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": route})
}

// PUT /api/routes/:id
func (h *Handlers) UpdateRoute(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.Route
	if !BindJSONOrError(c, &req) {
		return
	}
	req.ID = id
	route, err := h.Routes.Update(c.Request.Context(), actor, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// DELETE /api/routes/:id (cascades to the route's bookings)
func (h *Handlers) DeleteRoute(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Routes.Delete(c.Request.Context(), actor, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route dan booking terkait berhasil dihapus"})
}

// GET /api/routes/:id/seats?date=YYYY-MM-DD
func (h *Handlers) GetBookedSeats(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		RespondError(c, http.StatusBadRequest, "date wajib diisi", nil)
		return
	}
	route, err := h.Routes.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	booked, err := h.Bookings.BookedSeats(c.Request.Context(), id, date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"seats":       route.SeatLabels(),
		"bookedSeats": booked,
	})
}
