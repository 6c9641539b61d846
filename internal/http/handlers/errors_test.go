package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"busbackend/internal/domain"
)

func recordDomainError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/bookings", nil)

	RespondDomainError(c, err)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	return w, body
}

func TestRespondSeatConflict(t *testing.T) {
	w, body := recordDomainError(t, domain.SeatConflictError{Seats: []string{"A1", "B2"}})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if body["code"] != "seat_conflict" {
		t.Fatalf("expected seat_conflict code, got %v", body["code"])
	}
	details, ok := body["details"].(map[string]any)
	if !ok {
		t.Fatalf("expected details object, got %v", body["details"])
	}
	seats, ok := details["conflictingSeats"].([]any)
	if !ok || len(seats) != 2 || seats[0] != "A1" {
		t.Fatalf("expected conflicting seats in details, got %v", details["conflictingSeats"])
	}
}

func TestRespondDomainErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.FareUndefinedError{From: "A", To: "B"}, http.StatusBadRequest, "fare_undefined"},
		{domain.ValidationError{Field: "seats", Msg: "wajib pilih seat"}, http.StatusBadRequest, "validation_error"},
		{domain.NotFoundError{Resource: "booking"}, http.StatusNotFound, "not_found"},
		{domain.UnauthorizedError{Msg: "hanya admin"}, http.StatusForbidden, "forbidden"},
		{domain.UnavailableError{}, http.StatusServiceUnavailable, "storage_unavailable"},
	}
	for _, tc := range cases {
		w, body := recordDomainError(t, tc.err)
		if w.Code != tc.status {
			t.Fatalf("%T: expected %d, got %d", tc.err, tc.status, w.Code)
		}
		if body["code"] != tc.code {
			t.Fatalf("%T: expected code %s, got %v", tc.err, tc.code, body["code"])
		}
	}
}
