package models

import (
	"strings"
	"time"

	"busbackend/internal/domain"
)

// User is an admin or a counter agent. Counter agents carry the city and
// counter name shown on their bookings.
type User struct {
	ID           domain.ID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	City         string    `json:"city,omitempty"`
	CounterName  string    `json:"counterName,omitempty"`
	IsBlocked    bool      `json:"isBlocked"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return domain.ValidationError{Field: "username", Msg: "username wajib diisi"}
	}
	switch u.Role {
	case domain.RoleAdmin:
	case domain.RoleCounter:
		if strings.TrimSpace(u.City) == "" {
			return domain.ValidationError{Field: "city", Msg: "city wajib untuk counter"}
		}
		if strings.TrimSpace(u.CounterName) == "" {
			return domain.ValidationError{Field: "counterName", Msg: "counterName wajib untuk counter"}
		}
	default:
		return domain.ValidationError{Field: "role", Msg: "role tidak dikenal: " + u.Role}
	}
	return nil
}
