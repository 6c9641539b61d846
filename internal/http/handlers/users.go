package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busbackend/internal/services"
)

// POST /api/users/counters
func (h *Handlers) CreateCounter(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req services.CounterInput
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := h.Users.CreateCounter(c.Request.Context(), actor, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "counter berhasil dibuat", "user": user})
}

// GET /api/users/counters
func (h *Handlers) ListCounters(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	counters, err := h.Users.ListCounters(c.Request.Context(), actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counters": counters})
}

type editCounterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PUT /api/users/counters/:id
func (h *Handlers) EditCounter(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req editCounterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Users.EditCounter(c.Request.Context(), actor, id, req.Username, req.Password); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "counter berhasil diupdate"})
}

// PUT /api/users/counters/:id/toggle-block
func (h *Handlers) ToggleCounterBlock(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	blocked, err := h.Users.ToggleBlock(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	msg := "counter berhasil di-unblock"
	if blocked {
		msg = "counter berhasil diblokir"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "isBlocked": blocked})
}

// DELETE /api/users/counters/:id
func (h *Handlers) DeleteCounter(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Users.DeleteCounter(c.Request.Context(), actor, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "counter berhasil dihapus"})
}

// GET /api/users/profile
func (h *Handlers) Profile(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	user, err := h.Users.Profile(c.Request.Context(), actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateProfileRequest struct {
	Username string `json:"username"`
}

// PUT /api/users/profile
func (h *Handlers) UpdateProfile(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Users.UpdateProfile(c.Request.Context(), actor, req.Username); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profil berhasil diupdate"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// PUT /api/users/change-password
func (h *Handlers) ChangePassword(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Users.ChangePassword(c.Request.Context(), actor, req.CurrentPassword, req.NewPassword); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password berhasil diupdate"})
}
