package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
	"github.com/cabrix/dispatch-api/internal/core/tripview"
)

// TripService implements the trip lifecycle: who may see, create, move,
// assign, and delete trips.
type TripService struct {
	trips     ports.TripRepository
	users     ports.UserRepository
	vehicles  ports.VehicleRepository
	companies ports.CompanyRepository
	audit     ports.AuditSink
	logger    zerolog.Logger
}

func NewTripService(
	trips ports.TripRepository,
	users ports.UserRepository,
	vehicles ports.VehicleRepository,
	companies ports.CompanyRepository,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *TripService {
	return &TripService{
		trips:     trips,
		users:     users,
		vehicles:  vehicles,
		companies: companies,
		audit:     audit,
		logger:    logger,
	}
}

// List returns the trips the actor may see, run through the ordering and
// filtering engine. Admins see every trip; drivers see trips assigned to
// them; employees see trips they requested.
func (s *TripService) List(ctx context.Context, actor ports.Actor, spec tripview.FilterSpec) ([]*domain.Trip, error) {
	var scope ports.TripScope
	switch actor.Role {
	case domain.RoleAdmin:
		// unscoped
	case domain.RoleDriver:
		scope.DriverID = actor.UserID
	case domain.RoleEmployee:
		scope.PassengerID = actor.UserID
	default:
		return nil, domain.ErrForbidden
	}

	trips, err := s.trips.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	return tripview.Display(trips, spec), nil
}

// Get returns one trip if the actor is an admin or a party to it.
func (s *TripService) Get(ctx context.Context, actor ports.Actor, id int64) (*domain.Trip, error) {
	trip, err := s.trips.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, trip) {
		return nil, domain.ErrForbidden
	}
	return trip, nil
}

// Create records a new pending trip for the actor as passenger. When no
// company is given the passenger's first company is used.
func (s *TripService) Create(ctx context.Context, actor ports.Actor, input ports.CreateTripInput) (*domain.Trip, error) {
	passenger, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	companyID := input.CompanyID
	if companyID == 0 {
		if len(passenger.Companies) == 0 {
			return nil, domain.ErrCompanyNotFound
		}
		companyID = passenger.Companies[0].ID
	} else if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, err
	}

	trip := &domain.Trip{
		PickupLocation:  input.PickupLocation,
		DropoffLocation: input.DropoffLocation,
		PickupTime:      input.PickupTime,
		Status:          domain.StatusPending,
		Notes:           input.Notes,
		PassengerID:     passenger.ID,
		Passenger:       passenger,
		CompanyID:       companyID,
		CreatedAt:       time.Now().UTC(),
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create trip")
		return nil, err
	}

	s.audit.Record(domain.TripEvent{
		TripID:    created.ID,
		To:        domain.StatusPending,
		Action:    domain.AuditCreated,
		ActorID:   actor.UserID,
		Timestamp: created.CreatedAt,
	})

	s.logger.Info().Int64("trip_id", created.ID).Int64("passenger_id", passenger.ID).Msg("trip created")
	return created, nil
}

// Update performs exactly one of: a lifecycle transition ({status}), an
// admin assignment ({driver_id, vehicle_id}), or pending-only field edits.
// The updated trip is returned in full so the caller can replace its local
// entry by id without a refetch.
func (s *TripService) Update(ctx context.Context, actor ports.Actor, id int64, input ports.UpdateTripInput) (*domain.Trip, error) {
	trip, err := s.trips.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, trip) {
		return nil, domain.ErrForbidden
	}

	if input.DriverID != nil || input.VehicleID != nil {
		return s.assign(ctx, actor, trip, input)
	}
	if input.Status != nil {
		return s.transition(ctx, actor, trip, *input.Status)
	}
	return s.edit(ctx, actor, trip, input)
}

// transition applies a status change, enforcing both the state machine and
// the per-role initiator rules.
func (s *TripService) transition(ctx context.Context, actor ports.Actor, trip *domain.Trip, next domain.TripStatus) (*domain.Trip, error) {
	if !trip.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	switch actor.Role {
	case domain.RoleEmployee:
		// Passengers may only cancel their own pending trips.
		if next != domain.StatusCancelled || trip.PassengerID != actor.UserID {
			return nil, domain.ErrForbidden
		}
	case domain.RoleDriver:
		// Drivers start and complete trips assigned to them.
		if trip.DriverID != actor.UserID {
			return nil, domain.ErrForbidden
		}
		if next != domain.StatusInProgress && next != domain.StatusCompleted {
			return nil, domain.ErrForbidden
		}
	case domain.RoleAdmin:
		// Admins dispatch and delete; they do not drive the lifecycle.
		return nil, domain.ErrForbidden
	default:
		return nil, domain.ErrForbidden
	}

	prev := trip.Status
	trip.Status = next
	if next == domain.StatusCompleted {
		now := time.Now().UTC()
		trip.CompletedAt = &now
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.TripEvent{
		TripID:    updated.ID,
		From:      prev,
		To:        next,
		Action:    domain.AuditTransition,
		ActorID:   actor.UserID,
		Timestamp: time.Now().UTC(),
	})

	s.logger.Info().
		Int64("trip_id", updated.ID).
		Str("from", string(prev)).
		Str("to", string(next)).
		Msg("trip transition")
	return updated, nil
}

// assign sets driver and vehicle on a pending, unassigned trip in one
// request. The trip stays pending but leaves the dispatch queue; the vehicle
// leaves the available pool.
func (s *TripService) assign(ctx context.Context, actor ports.Actor, trip *domain.Trip, input ports.UpdateTripInput) (*domain.Trip, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.DriverID == nil || input.VehicleID == nil {
		return nil, domain.ErrAssignmentIncomplete
	}
	if !trip.UnassignedPending() {
		return nil, domain.ErrTripNotAssignable
	}

	driver, err := s.users.FindByID(ctx, *input.DriverID)
	if err != nil {
		return nil, err
	}
	if driver.Role != domain.RoleDriver {
		return nil, domain.ErrNotADriver
	}

	vehicle, err := s.vehicles.FindByID(ctx, *input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleAvailable {
		return nil, domain.ErrVehicleUnavailable
	}

	vehicle.Status = domain.VehicleAssigned
	if _, err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	if err := s.users.AttachVehicle(ctx, driver.ID, *vehicle); err != nil {
		return nil, err
	}

	trip.DriverID = driver.ID
	trip.Driver = driver
	trip.VehicleID = vehicle.ID
	trip.Vehicle = vehicle

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.TripEvent{
		TripID:    updated.ID,
		Action:    domain.AuditAssigned,
		ActorID:   actor.UserID,
		Timestamp: time.Now().UTC(),
	})

	s.logger.Info().
		Int64("trip_id", updated.ID).
		Int64("driver_id", driver.ID).
		Int64("vehicle_id", vehicle.ID).
		Msg("trip assigned")
	return updated, nil
}

// edit applies field updates. Pickup, dropoff, and pickup time may change
// only while the trip is pending and only by its passenger or an admin.
func (s *TripService) edit(ctx context.Context, actor ports.Actor, trip *domain.Trip, input ports.UpdateTripInput) (*domain.Trip, error) {
	editable := trip.Status == domain.StatusPending &&
		(actor.Role == domain.RoleAdmin || (actor.Role == domain.RoleEmployee && trip.PassengerID == actor.UserID))

	if input.PickupLocation != nil || input.DropoffLocation != nil || input.PickupTime != nil {
		if !editable {
			return nil, domain.ErrForbidden
		}
		if input.PickupLocation != nil {
			trip.PickupLocation = *input.PickupLocation
		}
		if input.DropoffLocation != nil {
			trip.DropoffLocation = *input.DropoffLocation
		}
		if input.PickupTime != nil {
			trip.PickupTime = *input.PickupTime
		}
	}
	if input.Notes != nil {
		trip.Notes = *input.Notes
	}

	return s.trips.Update(ctx, trip)
}

// Delete removes a trip. Admin only.
func (s *TripService) Delete(ctx context.Context, actor ports.Actor, id int64) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if _, err := s.trips.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(domain.TripEvent{
		TripID:    id,
		Action:    domain.AuditDeleted,
		ActorID:   actor.UserID,
		Timestamp: time.Now().UTC(),
	})

	s.logger.Info().Int64("trip_id", id).Msg("trip deleted")
	return nil
}

func (s *TripService) canView(actor ports.Actor, trip *domain.Trip) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleDriver:
		return trip.DriverID == actor.UserID
	case domain.RoleEmployee:
		return trip.PassengerID == actor.UserID
	default:
		return false
	}
}
