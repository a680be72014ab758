package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cabrix/dispatch-api/internal/core/domain"
)

// VehicleRepository persists the vehicle fleet.
type VehicleRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{db: db, col: db.Collection(collectionVehicles)}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionVehicles)
	if err != nil {
		return nil, err
	}
	v.ID = id

	if _, err := r.col.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrVehicleExists
		}
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}
	return v, nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *VehicleRepository) FindByRegistration(ctx context.Context, registrationNumber string) (*domain.Vehicle, error) {
	return r.findOne(ctx, bson.M{"registration_number": registrationNumber})
}

func (r *VehicleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Vehicle
	if err := r.col.FindOne(ctx, filter).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer cur.Close(ctx)

	var vehicles []*domain.Vehicle
	if err := cur.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrVehicleNotFound
	}
	return v, nil
}
