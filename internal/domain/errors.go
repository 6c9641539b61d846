package domain

import (
	"errors"
	"fmt"
	"strings"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// FareUndefinedError means no fare row exists for the requested (from, to)
// pair. The caller must reject the booking, never default to zero.
type FareUndefinedError struct {
	From string
	To   string
}

func (e FareUndefinedError) Error() string {
	return fmt.Sprintf("tarif %s -> %s belum tersedia", e.From, e.To)
}

// SeatConflictError carries the subset of requested seats that are already
// confirmed for the same route and journey date.
type SeatConflictError struct {
	Seats []string
	Err   error
}

func (e SeatConflictError) Error() string {
	if len(e.Seats) == 0 {
		return "seat sudah dibooking"
	}
	return fmt.Sprintf("seat sudah dibooking: %s", strings.Join(e.Seats, ", "))
}

func (e SeatConflictError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "tidak diizinkan"
}

// UnavailableError marks transient storage failures the caller may retry.
type UnavailableError struct {
	Err error
}

func (e UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage tidak tersedia: %v", e.Err)
	}
	return "storage tidak tersedia"
}

func (e UnavailableError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsFareUndefined(err error) bool {
	var target FareUndefinedError
	return errors.As(err, &target)
}

func IsSeatConflict(err error) bool {
	var target SeatConflictError
	return errors.As(err, &target)
}

// ConflictSeats extracts the offending seat labels when err wraps a seat
// conflict, so handlers can report them back to the counter.
func ConflictSeats(err error) []string {
	var target SeatConflictError
	if errors.As(err, &target) {
		return target.Seats
	}
	return nil
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsUnavailable(err error) bool {
	var target UnavailableError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
