package ports

import (
	"context"

	"github.com/cabrix/dispatch-api/internal/core/domain"
)

// TripScope restricts a trip listing to what the caller may see.
// Exactly one of the id fields is set for driver/passenger scopes; the
// admin scope sets neither.
type TripScope struct {
	DriverID    int64
	PassengerID int64
}

// TripRepository defines persistence operations for trips.
type TripRepository interface {
	Create(ctx context.Context, t *domain.Trip) (*domain.Trip, error)
	FindByID(ctx context.Context, id int64) (*domain.Trip, error)
	List(ctx context.Context, scope TripScope) ([]*domain.Trip, error)
	// Update persists the full trip document and returns the stored state.
	Update(ctx context.Context, t *domain.Trip) (*domain.Trip, error)
	Delete(ctx context.Context, id int64) error
}

// TripEventRepository persists the trip audit trail.
type TripEventRepository interface {
	Insert(ctx context.Context, ev *domain.TripEvent) error
	ListByTrip(ctx context.Context, tripID int64) ([]*domain.TripEvent, error)
}
