package services

import (
	"testing"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
)

func fareRoute() models.Route {
	return models.Route{
		ID:     1,
		Name:   "R1",
		Status: models.RouteStatusActive,
		Stops: []models.Stop{
			{Name: "A", Type: models.StopTypePickup},
			{Name: "B", Type: models.StopTypeBoth},
			{Name: "C", Type: models.StopTypeDropoff},
		},
		Fares: []models.Fare{
			{From: "A", To: "C", Amount: 500},
			{From: "A", To: "B", Amount: 300},
			{From: "C", To: "A", Amount: 450},
		},
	}
}

func TestFareForExactPair(t *testing.T) {
	var svc FareService
	got, err := svc.FareFor(fareRoute(), "A", "C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 500 {
		t.Fatalf("expected fare 500, got %d", got)
	}
}

func TestFareForTrimsInput(t *testing.T) {
	var svc FareService
	got, err := svc.FareFor(fareRoute(), "  A ", " B ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 300 {
		t.Fatalf("expected fare 300, got %d", got)
	}
}

func TestFareForDirectional(t *testing.T) {
	var svc FareService

	// C->A has its own row and its own price.
	got, err := svc.FareFor(fareRoute(), "C", "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 450 {
		t.Fatalf("expected fare 450, got %d", got)
	}

	// B->A has no row; the reverse A->B must not match.
	if _, err := svc.FareFor(fareRoute(), "B", "A"); !domain.IsFareUndefined(err) {
		t.Fatalf("expected FareUndefinedError, got %v", err)
	}
}

func TestFareForUndefinedNeverZero(t *testing.T) {
	var svc FareService
	got, err := svc.FareFor(fareRoute(), "B", "C")
	if !domain.IsFareUndefined(err) {
		t.Fatalf("expected FareUndefinedError, got %v", err)
	}
	if got != 0 {
		t.Fatalf("expected zero amount alongside the error, got %d", got)
	}
}
