package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
)

// POST /api/bookings
func (h *Handlers) CreateBooking(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req models.BookingDraft
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := h.Bookings.Create(c.Request.Context(), actor, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GET /api/bookings (the actor's own counter bookings)
func (h *Handlers) MyBookings(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	bookings, err := h.Bookings.ListForCounter(c.Request.Context(), actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/search?routeId=&date= (admin, any status)
func (h *Handlers) SearchBookings(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	routeID, err := strconv.ParseInt(c.Query("routeId"), 10, 64)
	if err != nil || routeID <= 0 {
		RespondError(c, http.StatusBadRequest, "routeId tidak valid", nil)
		return
	}
	date := c.Query("date")
	if date == "" {
		RespondError(c, http.StatusBadRequest, "date wajib diisi", nil)
		return
	}
	bookings, err := h.Bookings.Search(c.Request.Context(), actor, domain.ID(routeID), date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:id
func (h *Handlers) GetBooking(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	booking, err := h.Bookings.Get(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// PUT /api/bookings/:id/cancel
func (h *Handlers) CancelBooking(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	booking, err := h.Bookings.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// DELETE /api/bookings/:id (admin hard delete)
func (h *Handlers) DeleteBooking(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Bookings.Delete(c.Request.Context(), actor, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking berhasil dihapus"})
}

// GET /api/bookings/:id/ticket (e-ticket PDF)
func (h *Handlers) GetBookingTicket(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	pdf, filename, err := h.Docs.GenerateETicket(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
