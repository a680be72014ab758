package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
	"github.com/cabrix/dispatch-api/internal/core/tripview"
)

const dateLayout = "2006-01-02"

type createTripRequest struct {
	PickupLocation  string `json:"pickup_location" validate:"required"`
	DropoffLocation string `json:"dropoff_location" validate:"required"`
	PickupTime      string `json:"pickup_time" validate:"required"`
	Notes           string `json:"notes"`
	CompanyID       int64  `json:"company_id"`
}

// updateTripRequest covers all three update shapes: a status transition, an
// admin assignment (driver_id + vehicle_id), or pending-only field edits.
// Absent fields stay untouched.
type updateTripRequest struct {
	Status          *string `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	DriverID        *int64  `json:"driver_id"`
	VehicleID       *int64  `json:"vehicle_id"`
	PickupLocation  *string `json:"pickup_location"`
	DropoffLocation *string `json:"dropoff_location"`
	PickupTime      *string `json:"pickup_time"`
	Notes           *string `json:"notes"`
}

func (r createTripRequest) toInput() (ports.CreateTripInput, error) {
	pickup, err := time.Parse(time.RFC3339, r.PickupTime)
	if err != nil {
		return ports.CreateTripInput{}, domain.ErrInvalidPickupTime
	}
	return ports.CreateTripInput{
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
		PickupTime:      pickup,
		Notes:           r.Notes,
		CompanyID:       r.CompanyID,
	}, nil
}

func (r updateTripRequest) toInput() (ports.UpdateTripInput, error) {
	input := ports.UpdateTripInput{
		DriverID:        r.DriverID,
		VehicleID:       r.VehicleID,
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
		Notes:           r.Notes,
	}
	if r.Status != nil {
		status := domain.TripStatus(*r.Status)
		input.Status = &status
	}
	if r.PickupTime != nil {
		pickup, err := time.Parse(time.RFC3339, *r.PickupTime)
		if err != nil {
			return ports.UpdateTripInput{}, domain.ErrInvalidPickupTime
		}
		input.PickupTime = &pickup
	}
	return input, nil
}

// filterFromQuery builds the listing filter from query parameters:
// status, search, date_from, date_to (dates as YYYY-MM-DD).
func filterFromQuery(c echo.Context) (tripview.FilterSpec, error) {
	spec := tripview.FilterSpec{
		Status:     c.QueryParam("status"),
		SearchTerm: c.QueryParam("search"),
	}
	if raw := c.QueryParam("date_from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return tripview.FilterSpec{}, err
		}
		spec.DateFrom = from
	}
	if raw := c.QueryParam("date_to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return tripview.FilterSpec{}, err
		}
		spec.DateTo = to
	}
	return spec, nil
}
