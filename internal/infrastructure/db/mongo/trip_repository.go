package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
)

// TripRepository persists trips. Passenger, driver, and vehicle snapshots
// are embedded on the trip document so a listing needs no joins; the
// service layer keeps them current on assignment.
type TripRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTripRepository(db *mongo.Database) *TripRepository {
	return &TripRepository{db: db, col: db.Collection(collectionTrips)}
}

func (r *TripRepository) Create(ctx context.Context, t *domain.Trip) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionTrips)
	if err != nil {
		return nil, err
	}
	t.ID = id

	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return nil, fmt.Errorf("insert trip: %w", err)
	}
	return t, nil
}

func (r *TripRepository) FindByID(ctx context.Context, id int64) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Trip
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return &t, nil
}

func (r *TripRepository) List(ctx context.Context, scope ports.TripScope) ([]*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if scope.DriverID != 0 {
		filter["driver_id"] = scope.DriverID
	}
	if scope.PassengerID != 0 {
		filter["passenger_id"] = scope.PassengerID
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer cur.Close(ctx)

	var trips []*domain.Trip
	if err := cur.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("decode trips: %w", err)
	}
	return trips, nil
}

func (r *TripRepository) Update(ctx context.Context, t *domain.Trip) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return nil, fmt.Errorf("update trip: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTripNotFound
	}
	return t, nil
}

func (r *TripRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

// TripEventRepository appends lifecycle events to the audit trail.
type TripEventRepository struct {
	col *mongo.Collection
}

func NewTripEventRepository(db *mongo.Database) *TripEventRepository {
	return &TripEventRepository{col: db.Collection(collectionTripEvents)}
}

func (r *TripEventRepository) Insert(ctx context.Context, ev *domain.TripEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, ev); err != nil {
		return fmt.Errorf("insert trip event: %w", err)
	}
	return nil
}

func (r *TripEventRepository) ListByTrip(ctx context.Context, tripID int64) ([]*domain.TripEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("list trip events: %w", err)
	}
	defer cur.Close(ctx)

	var events []*domain.TripEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode trip events: %w", err)
	}
	return events, nil
}
