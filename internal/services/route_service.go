package services

import (
	"context"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
	"busbackend/internal/events"
	"busbackend/internal/logger"
	"busbackend/internal/repositories"
	"busbackend/internal/utils"
)

// RouteService owns route lifecycle. Mutations are admin only; deleting a
// route cascades to its bookings. A booking commit racing the delete is
// handled by the commit transaction's route re-check, so the cascade here
// does not need the per-day commit locks.
type RouteService struct {
	RouteRepo repositories.RouteRepository
	Bus       *events.Bus
	Log       logger.Logger
}

func NewRouteService(routeRepo repositories.RouteRepository, bus *events.Bus, log logger.Logger) *RouteService {
	return &RouteService{RouteRepo: routeRepo, Bus: bus, Log: log}
}

func applyRouteDefaults(route *models.Route) {
	if route.Status == "" {
		route.Status = models.RouteStatusActive
	}
	if route.SeatRows == 0 {
		route.SeatRows = models.DefaultSeatRows
	}
	if route.SeatsPerRow == 0 {
		route.SeatsPerRow = models.DefaultSeatsPerRow
	}
}

// normalizeRouteTimes validates departure and arrival times as HH:MM wall
// clock strings. Stop arrival times are optional.
func normalizeRouteTimes(route *models.Route) error {
	t, err := utils.NormalizeTimeStr(route.DepartureTime)
	if err != nil {
		return domain.ValidationError{Field: "departureTime", Msg: err.Error()}
	}
	route.DepartureTime = t
	for i := range route.Stops {
		if route.Stops[i].ArrivalTime == "" {
			continue
		}
		t, err := utils.NormalizeTimeStr(route.Stops[i].ArrivalTime)
		if err != nil {
			return domain.ValidationError{Field: "stops", Msg: "arrivalTime " + route.Stops[i].Name + ": " + err.Error()}
		}
		route.Stops[i].ArrivalTime = t
	}
	return nil
}

func (s *RouteService) Create(ctx context.Context, actor domain.Actor, route models.Route) (models.Route, error) {
	if !actor.IsAdmin() {
		return models.Route{}, domain.UnauthorizedError{Msg: "hanya admin"}
	}
	applyRouteDefaults(&route)
	if err := normalizeRouteTimes(&route); err != nil {
		return models.Route{}, err
	}
	if err := route.Validate(); err != nil {
		return models.Route{}, err
	}
	created, err := s.RouteRepo.Create(ctx, route)
	if err != nil {
		return models.Route{}, err
	}
	s.Log.Info("route created", "route_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *RouteService) Update(ctx context.Context, actor domain.Actor, route models.Route) (models.Route, error) {
	if !actor.IsAdmin() {
		return models.Route{}, domain.UnauthorizedError{Msg: "hanya admin"}
	}
	if route.ID <= 0 {
		return models.Route{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	applyRouteDefaults(&route)
	if err := normalizeRouteTimes(&route); err != nil {
		return models.Route{}, err
	}
	if err := route.Validate(); err != nil {
		return models.Route{}, err
	}
	updated, err := s.RouteRepo.Update(ctx, route)
	if err != nil {
		return models.Route{}, err
	}
	s.Log.Info("route updated", "route_id", updated.ID, "name", updated.Name)
	return updated, nil
}

func (s *RouteService) Get(ctx context.Context, id domain.ID) (models.Route, error) {
	return s.RouteRepo.GetByID(ctx, id)
}

func (s *RouteService) List(ctx context.Context) ([]models.Route, error) {
	return s.RouteRepo.List(ctx)
}

// Delete removes the route and every booking referencing it.
func (s *RouteService) Delete(ctx context.Context, actor domain.Actor, id domain.ID) error {
	if !actor.IsAdmin() {
		return domain.UnauthorizedError{Msg: "hanya admin"}
	}
	name, removed, err := s.RouteRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.Log.Info("route deleted", "route_id", id, "name", name, "bookings_removed", removed)
	if s.Bus != nil {
		s.Bus.PublishRouteDeleted(events.RouteEvent{
			RouteID:         int64(id),
			Name:            name,
			BookingsRemoved: removed,
		})
	}
	return nil
}
