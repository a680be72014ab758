package ports

import (
	"context"
	"time"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/tripview"
)

// Actor identifies the caller of a trip operation: the authenticated
// identity's id and role as established at login.
type Actor struct {
	UserID int64
	Role   domain.Role
}

// CreateTripInput carries a new trip request from a passenger.
type CreateTripInput struct {
	PickupLocation  string
	DropoffLocation string
	PickupTime      time.Time
	Notes           string
	// CompanyID is optional; when zero the passenger's first company is used.
	CompanyID int64
}

// UpdateTripInput carries a PUT /api/trips/:id body. Status requests a
// lifecycle transition; DriverID+VehicleID request an admin assignment.
// Field edits apply only while the trip is pending.
type UpdateTripInput struct {
	Status          *domain.TripStatus
	DriverID        *int64
	VehicleID       *int64
	PickupLocation  *string
	DropoffLocation *string
	PickupTime      *time.Time
	Notes           *string
}

// TripService implements the trip lifecycle: role-scoped listing, creation,
// transitions, assignment, and deletion.
type TripService interface {
	// List returns the trips the actor may see, displayed through the
	// ordering/filtering engine.
	List(ctx context.Context, actor Actor, spec tripview.FilterSpec) ([]*domain.Trip, error)
	Get(ctx context.Context, actor Actor, id int64) (*domain.Trip, error)
	Create(ctx context.Context, actor Actor, input CreateTripInput) (*domain.Trip, error)
	Update(ctx context.Context, actor Actor, id int64, input UpdateTripInput) (*domain.Trip, error)
	Delete(ctx context.Context, actor Actor, id int64) error
}

// AuditSink receives trip lifecycle events for asynchronous persistence.
type AuditSink interface {
	Record(ev domain.TripEvent)
}
