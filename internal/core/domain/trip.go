package domain

import (
	"errors"
	"time"
)

// TripStatus represents the lifecycle state of a trip.
type TripStatus string

const (
	StatusPending    TripStatus = "pending"
	StatusInProgress TripStatus = "in_progress"
	StatusCompleted  TripStatus = "completed"
	StatusCancelled  TripStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// completed and cancelled are terminal; in_progress can never be cancelled.
var validTransitions = map[TripStatus][]TripStatus{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

var ErrTripNotFound = errors.New("trip not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrForbidden = errors.New("access forbidden")
var ErrTripNotAssignable = errors.New("trip is not pending and unassigned")
var ErrAssignmentIncomplete = errors.New("driver and vehicle must be assigned together")
var ErrInvalidPickupTime = errors.New("invalid pickup time format")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s TripStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// StatusRank orders statuses for display: pending < in_progress < completed < cancelled.
func (s TripStatus) StatusRank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 4
	}
}

// Trip is the core workflow entity: one passenger transport request with
// driver/vehicle assignment and a status lifecycle.
type Trip struct {
	ID              int64      `json:"id" bson:"_id"`
	PickupLocation  string     `json:"pickup_location" bson:"pickup_location"`
	DropoffLocation string     `json:"dropoff_location" bson:"dropoff_location"`
	PickupTime      time.Time  `json:"pickup_time" bson:"pickup_time"`
	Status          TripStatus `json:"status" bson:"status"`
	Notes           string     `json:"notes,omitempty" bson:"notes,omitempty"`
	PassengerID     int64      `json:"passenger_id" bson:"passenger_id"`
	Passenger       *User      `json:"passenger,omitempty" bson:"passenger,omitempty"`
	DriverID        int64      `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	Driver          *User      `json:"driver,omitempty" bson:"driver,omitempty"`
	CompanyID       int64      `json:"company_id" bson:"company_id"`
	VehicleID       int64      `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty"`
	Vehicle         *Vehicle   `json:"vehicle,omitempty" bson:"vehicle,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// Assigned reports whether a driver has been assigned to the trip.
// Driver and vehicle are set together in a single assignment request, so
// driver presence is the authoritative signal.
func (t *Trip) Assigned() bool {
	return t.DriverID != 0
}

// UnassignedPending reports whether the trip is waiting for dispatch:
// pending status with no driver assigned.
func (t *Trip) UnassignedPending() bool {
	return t.Status == StatusPending && !t.Assigned()
}

// Audit trail actions.
const (
	AuditCreated    = "created"
	AuditTransition = "transition"
	AuditAssigned   = "assigned"
	AuditDeleted    = "deleted"
)

// TripEvent records a single lifecycle change on a trip for the audit trail.
type TripEvent struct {
	TripID    int64      `json:"trip_id" bson:"trip_id"`
	From      TripStatus `json:"from,omitempty" bson:"from,omitempty"`
	To        TripStatus `json:"to,omitempty" bson:"to,omitempty"`
	Action    string     `json:"action" bson:"action"`
	ActorID   int64      `json:"actor_id" bson:"actor_id"`
	Timestamp time.Time  `json:"timestamp" bson:"timestamp"`
}
