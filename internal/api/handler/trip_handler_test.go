package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
	"github.com/cabrix/dispatch-api/internal/core/tripview"
)

type stubTripService struct {
	listFn   func(ctx context.Context, actor ports.Actor, spec tripview.FilterSpec) ([]*domain.Trip, error)
	getFn    func(ctx context.Context, actor ports.Actor, id int64) (*domain.Trip, error)
	createFn func(ctx context.Context, actor ports.Actor, input ports.CreateTripInput) (*domain.Trip, error)
	updateFn func(ctx context.Context, actor ports.Actor, id int64, input ports.UpdateTripInput) (*domain.Trip, error)
	deleteFn func(ctx context.Context, actor ports.Actor, id int64) error
}

func (s *stubTripService) List(ctx context.Context, actor ports.Actor, spec tripview.FilterSpec) ([]*domain.Trip, error) {
	return s.listFn(ctx, actor, spec)
}

func (s *stubTripService) Get(ctx context.Context, actor ports.Actor, id int64) (*domain.Trip, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubTripService) Create(ctx context.Context, actor ports.Actor, input ports.CreateTripInput) (*domain.Trip, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubTripService) Update(ctx context.Context, actor ports.Actor, id int64, input ports.UpdateTripInput) (*domain.Trip, error) {
	return s.updateFn(ctx, actor, id, input)
}

func (s *stubTripService) Delete(ctx context.Context, actor ports.Actor, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

func authedRequest(e *echo.Echo, method, target, body string, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", int64(7))
	c.Set("role", string(role))
	return c, rec
}

func TestTripHandler_List_FilterFromQuery(t *testing.T) {
	e := newTestEcho()
	var gotSpec tripview.FilterSpec
	var gotActor ports.Actor
	stub := &stubTripService{
		listFn: func(ctx context.Context, actor ports.Actor, spec tripview.FilterSpec) ([]*domain.Trip, error) {
			gotActor = actor
			gotSpec = spec
			return []*domain.Trip{{ID: 1, Status: domain.StatusPending}}, nil
		},
	}
	h := NewTripHandler(stub)

	c, rec := authedRequest(e, http.MethodGet, "/api/trips?status=pending&search=nairobi&date_from=2026-08-01&date_to=2026-08-15", "", domain.RoleAdmin)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if gotActor.UserID != 7 || gotActor.Role != domain.RoleAdmin {
		t.Fatalf("unexpected actor: %+v", gotActor)
	}
	if gotSpec.Status != "pending" || gotSpec.SearchTerm != "nairobi" {
		t.Fatalf("unexpected spec: %+v", gotSpec)
	}
	if gotSpec.DateFrom.Format("2006-01-02") != "2026-08-01" {
		t.Fatalf("date_from not parsed: %v", gotSpec.DateFrom)
	}
	if gotSpec.DateTo.Format("2006-01-02") != "2026-08-15" {
		t.Fatalf("date_to not parsed: %v", gotSpec.DateTo)
	}
}

func TestTripHandler_List_BadDate(t *testing.T) {
	e := newTestEcho()
	stub := &stubTripService{
		listFn: func(ctx context.Context, actor ports.Actor, spec tripview.FilterSpec) ([]*domain.Trip, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTripHandler(stub)

	c, _ := authedRequest(e, http.MethodGet, "/api/trips?date_from=not-a-date", "", domain.RoleAdmin)
	err := h.List(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTripHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	var gotInput ports.CreateTripInput
	stub := &stubTripService{
		createFn: func(ctx context.Context, actor ports.Actor, input ports.CreateTripInput) (*domain.Trip, error) {
			gotInput = input
			return &domain.Trip{ID: 42, Status: domain.StatusPending, PickupLocation: input.PickupLocation}, nil
		},
	}
	h := NewTripHandler(stub)

	body := `{"pickup_location":"Westlands","dropoff_location":"JKIA","pickup_time":"2026-09-01T08:30:00Z","notes":"two bags"}`
	c, rec := authedRequest(e, http.MethodPost, "/api/trips", body, domain.RoleEmployee)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	want := time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)
	if !gotInput.PickupTime.Equal(want) {
		t.Fatalf("pickup time = %v, want %v", gotInput.PickupTime, want)
	}
	if gotInput.Notes != "two bags" {
		t.Fatalf("notes not passed through: %q", gotInput.Notes)
	}

	var resp struct {
		Trip map[string]any `json:"trip"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Trip["id"] != float64(42) {
		t.Fatalf("expected trip id 42, got %v", resp.Trip["id"])
	}
}

func TestTripHandler_Create_BadPickupTime(t *testing.T) {
	e := newTestEcho()
	stub := &stubTripService{
		createFn: func(ctx context.Context, actor ports.Actor, input ports.CreateTripInput) (*domain.Trip, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTripHandler(stub)

	body := `{"pickup_location":"A","dropoff_location":"B","pickup_time":"tomorrow at nine"}`
	c, _ := authedRequest(e, http.MethodPost, "/api/trips", body, domain.RoleEmployee)
	if err := h.Create(c); !errors.Is(err, domain.ErrInvalidPickupTime) {
		t.Fatalf("expected ErrInvalidPickupTime, got %v", err)
	}
}

func TestTripHandler_Update_StatusTransition(t *testing.T) {
	e := newTestEcho()
	var gotInput ports.UpdateTripInput
	stub := &stubTripService{
		updateFn: func(ctx context.Context, actor ports.Actor, id int64, input ports.UpdateTripInput) (*domain.Trip, error) {
			gotInput = input
			return &domain.Trip{ID: id, Status: *input.Status}, nil
		},
	}
	h := NewTripHandler(stub)

	c, rec := authedRequest(e, http.MethodPut, "/api/trips/5", `{"status":"in_progress"}`, domain.RoleDriver)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotInput.Status == nil || *gotInput.Status != domain.StatusInProgress {
		t.Fatalf("status not passed through: %+v", gotInput)
	}
	if gotInput.DriverID != nil || gotInput.PickupLocation != nil {
		t.Fatalf("unexpected extra fields: %+v", gotInput)
	}
}

func TestTripHandler_Update_Assignment(t *testing.T) {
	e := newTestEcho()
	var gotInput ports.UpdateTripInput
	stub := &stubTripService{
		updateFn: func(ctx context.Context, actor ports.Actor, id int64, input ports.UpdateTripInput) (*domain.Trip, error) {
			gotInput = input
			return &domain.Trip{ID: id, Status: domain.StatusPending, DriverID: *input.DriverID, VehicleID: *input.VehicleID}, nil
		},
	}
	h := NewTripHandler(stub)

	c, rec := authedRequest(e, http.MethodPut, "/api/trips/5", `{"driver_id":3,"vehicle_id":9}`, domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotInput.DriverID == nil || *gotInput.DriverID != 3 {
		t.Fatalf("driver id not passed: %+v", gotInput)
	}
	if gotInput.VehicleID == nil || *gotInput.VehicleID != 9 {
		t.Fatalf("vehicle id not passed: %+v", gotInput)
	}
}

func TestTripHandler_Update_InvalidStatusValue(t *testing.T) {
	e := newTestEcho()
	stub := &stubTripService{
		updateFn: func(ctx context.Context, actor ports.Actor, id int64, input ports.UpdateTripInput) (*domain.Trip, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTripHandler(stub)

	c, _ := authedRequest(e, http.MethodPut, "/api/trips/5", `{"status":"teleported"}`, domain.RoleDriver)
	c.SetParamNames("id")
	c.SetParamValues("5")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTripHandler_Update_BadID(t *testing.T) {
	e := newTestEcho()
	stub := &stubTripService{}
	h := NewTripHandler(stub)

	c, _ := authedRequest(e, http.MethodPut, "/api/trips/abc", `{"status":"cancelled"}`, domain.RoleEmployee)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTripHandler_Delete(t *testing.T) {
	e := newTestEcho()
	deleted := int64(0)
	stub := &stubTripService{
		deleteFn: func(ctx context.Context, actor ports.Actor, id int64) error {
			deleted = id
			return nil
		},
	}
	h := NewTripHandler(stub)

	c, rec := authedRequest(e, http.MethodDelete, "/api/trips/5", "", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != 5 {
		t.Fatalf("expected id 5 deleted, got %d", deleted)
	}
}

func TestTripHandler_MissingClaims(t *testing.T) {
	e := newTestEcho()
	stub := &stubTripService{}
	h := NewTripHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
