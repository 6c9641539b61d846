package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
	"busbackend/internal/events"
	"busbackend/internal/logger"
	"busbackend/internal/repositories"
	"busbackend/internal/utils"
)

// BookingService runs the booking write path: collect a draft, validate it
// against the live route and seat inventory, and commit it with the fare
// pinned. Commits for the same (route, journeyDate) are serialized on a
// keyed lock and the inventory is re-queried fresh under that lock; the
// pre-check a counter saw on screen is advisory only. The unique key on
// booking_seats remains the storage-level backstop.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	RouteRepo   repositories.RouteRepository
	Fares       FareService
	Seats       SeatService
	Bus         *events.Bus
	Log         logger.Logger

	// Test seams; nil means use the repos.
	FetchRoute     func(ctx context.Context, id domain.ID) (models.Route, error)
	FetchConfirmed func(ctx context.Context, routeID domain.ID, journeyDate string) ([]models.Booking, error)
	Persist        func(ctx context.Context, b models.Booking) (models.Booking, error)

	locks *keyedLock
}

func NewBookingService(bookingRepo repositories.BookingRepository, routeRepo repositories.RouteRepository, bus *events.Bus, log logger.Logger) *BookingService {
	return &BookingService{
		BookingRepo: bookingRepo,
		RouteRepo:   routeRepo,
		Bus:         bus,
		Log:         log,
		locks:       newKeyedLock(),
	}
}

func commitKey(routeID domain.ID, journeyDate string) string {
	return fmt.Sprintf("%d|%s", routeID, journeyDate)
}

func (s *BookingService) fetchRoute(ctx context.Context, id domain.ID) (models.Route, error) {
	if s.FetchRoute != nil {
		return s.FetchRoute(ctx, id)
	}
	return s.RouteRepo.GetByID(ctx, id)
}

func (s *BookingService) fetchConfirmed(ctx context.Context, routeID domain.ID, journeyDate string) ([]models.Booking, error) {
	if s.FetchConfirmed != nil {
		return s.FetchConfirmed(ctx, routeID, journeyDate)
	}
	return s.BookingRepo.FindConfirmed(ctx, routeID, journeyDate)
}

func (s *BookingService) persist(ctx context.Context, b models.Booking) (models.Booking, error) {
	if s.Persist != nil {
		return s.Persist(ctx, b)
	}
	return s.BookingRepo.Create(ctx, b)
}

// Create takes a draft from Draft to Committed, or rejects it with a
// specific reason. Validation order: route exists and is active, stops
// valid, fare defined, then the fresh seat-conflict check.
func (s *BookingService) Create(ctx context.Context, actor domain.Actor, draft models.BookingDraft) (models.Booking, error) {
	if err := draft.Validate(); err != nil {
		return models.Booking{}, err
	}

	journeyDate, err := utils.NormalizeJourneyDate(draft.JourneyDate)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "journeyDate", Msg: err.Error()}
	}

	seats := utils.NormalizeSeats(draft.Seats)

	key := commitKey(draft.RouteID, journeyDate)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	route, err := s.fetchRoute(ctx, draft.RouteID)
	if err != nil {
		return models.Booking{}, err
	}
	if !route.IsActive() {
		return models.Booking{}, domain.ValidationError{Field: "routeId", Msg: "route tidak aktif"}
	}

	from := strings.TrimSpace(draft.FromStop)
	to := strings.TrimSpace(draft.ToStop)
	if !route.HasStop(from) {
		return models.Booking{}, domain.ValidationError{Field: "fromStop", Msg: "stop tidak ada di route: " + from}
	}
	if !route.HasStop(to) {
		return models.Booking{}, domain.ValidationError{Field: "toStop", Msg: "stop tidak ada di route: " + to}
	}

	fare, err := s.Fares.FareFor(route, from, to)
	if err != nil {
		return models.Booking{}, err
	}

	// Fresh inventory under the commit lock, never a cached copy.
	confirmed, err := s.fetchConfirmed(ctx, draft.RouteID, journeyDate)
	if err != nil {
		return models.Booking{}, err
	}
	if err := s.Seats.ValidateRequest(route, seats, UnionSeats(confirmed)); err != nil {
		return models.Booking{}, err
	}

	booking := models.Booking{
		Reference:      newBookingReference(),
		RouteID:        route.ID,
		RouteName:      route.Name,
		UserID:         actor.UserID,
		JourneyDate:    journeyDate,
		FromStop:       from,
		ToStop:         to,
		PassengerName:  strings.TrimSpace(draft.PassengerName),
		PassengerPhone: strings.TrimSpace(draft.PassengerPhone),
		Seats:          seats,
		FarePerSeat:    fare,
		TotalFare:      fare * int64(len(seats)),
		Status:         models.BookingStatusConfirmed,
		CounterName:    actor.CounterName,
	}

	saved, err := s.persist(ctx, booking)
	if err != nil {
		return models.Booking{}, err
	}
	saved.RouteName = route.Name

	s.Log.Info("booking committed",
		"booking_id", saved.ID,
		"reference", saved.Reference,
		"route_id", saved.RouteID,
		"journey_date", saved.JourneyDate,
		"seats", saved.Seats,
		"total", saved.TotalFare,
		"counter", saved.CounterName,
	)
	if s.Bus != nil {
		s.Bus.PublishBookingCreated(events.BookingEvent{
			BookingID:   int64(saved.ID),
			Reference:   saved.Reference,
			RouteID:     int64(saved.RouteID),
			JourneyDate: saved.JourneyDate,
			Seats:       saved.Seats,
			TotalFare:   saved.TotalFare,
			CounterName: saved.CounterName,
		})
	}
	return saved, nil
}

// Cancel flips a confirmed booking to cancelled. Only the owning counter
// user or an admin may cancel; the transition is one-way and immediately
// frees the seats for the next inventory query.
func (s *BookingService) Cancel(ctx context.Context, actor domain.Actor, id domain.ID) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if !actor.IsAdmin() && booking.UserID != actor.UserID {
		return models.Booking{}, domain.UnauthorizedError{Msg: "booking milik counter lain"}
	}

	key := commitKey(booking.RouteID, booking.JourneyDate)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	cancelled, err := s.BookingRepo.Cancel(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}

	s.Log.Info("booking cancelled",
		"booking_id", cancelled.ID,
		"reference", cancelled.Reference,
		"by_user", actor.UserID,
	)
	if s.Bus != nil {
		s.Bus.PublishBookingCancelled(events.BookingEvent{
			BookingID:   int64(cancelled.ID),
			Reference:   cancelled.Reference,
			RouteID:     int64(cancelled.RouteID),
			JourneyDate: cancelled.JourneyDate,
			Seats:       cancelled.Seats,
			TotalFare:   cancelled.TotalFare,
			CounterName: cancelled.CounterName,
		})
	}
	return cancelled, nil
}

// Get returns one booking, visible to its owner or an admin.
func (s *BookingService) Get(ctx context.Context, actor domain.Actor, id domain.ID) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if !actor.IsAdmin() && booking.UserID != actor.UserID {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return booking, nil
}

// ListForCounter returns the actor's own counter bookings, newest first.
func (s *BookingService) ListForCounter(ctx context.Context, actor domain.Actor) ([]models.Booking, error) {
	return s.BookingRepo.ListByCounter(ctx, actor.CounterName)
}

// Search returns all bookings (any status) for a route and day. Admin only.
func (s *BookingService) Search(ctx context.Context, actor domain.Actor, routeID domain.ID, date string) ([]models.Booking, error) {
	if !actor.IsAdmin() {
		return nil, domain.UnauthorizedError{Msg: "hanya admin"}
	}
	journeyDate, err := utils.NormalizeJourneyDate(date)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: err.Error()}
	}
	return s.BookingRepo.Search(ctx, routeID, journeyDate)
}

// Delete removes a booking entirely. Admin only; counters cancel instead.
func (s *BookingService) Delete(ctx context.Context, actor domain.Actor, id domain.ID) error {
	if !actor.IsAdmin() {
		return domain.UnauthorizedError{Msg: "hanya admin"}
	}
	return s.BookingRepo.Delete(ctx, id)
}

// BookedSeats is the advisory inventory view counters render the seat map
// from. The commit path re-queries on its own.
func (s *BookingService) BookedSeats(ctx context.Context, routeID domain.ID, date string) ([]string, error) {
	journeyDate, err := utils.NormalizeJourneyDate(date)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: err.Error()}
	}
	confirmed, err := s.fetchConfirmed(ctx, routeID, journeyDate)
	if err != nil {
		return nil, err
	}
	return UnionSeats(confirmed), nil
}

func newBookingReference() string {
	return "BKG-" + strings.ToUpper(uuid.NewString()[:8])
}
