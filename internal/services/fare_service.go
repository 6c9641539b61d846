package services

import (
	"strings"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
)

// FareService resolves fares from a route's fare table. Lookup is an exact
// match on the ordered (from, to) pair; the reverse pair never matches, so
// asymmetric pricing works. A missing row rejects the booking, it never
// falls back to zero.
type FareService struct{}

func (FareService) FareFor(route models.Route, from, to string) (int64, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	for _, f := range route.Fares {
		if strings.TrimSpace(f.From) == from && strings.TrimSpace(f.To) == to {
			return f.Amount, nil
		}
	}
	return 0, domain.FareUndefinedError{From: from, To: to}
}
