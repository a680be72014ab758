package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Collection names. The counters collection backs numeric id allocation.
const (
	collectionUsers      = "users"
	collectionCompanies  = "companies"
	collectionVehicles   = "vehicles"
	collectionTrips      = "trips"
	collectionTripEvents = "trip_events"
	collectionCounters   = "counters"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		collectionCompanies: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		collectionVehicles: {
			{Keys: bson.D{{Key: "registration_number", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		collectionTrips: {
			{Keys: bson.D{{Key: "passenger_id", Value: 1}}},
			{Keys: bson.D{{Key: "driver_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionTripEvents: {
			{Keys: bson.D{{Key: "trip_id", Value: 1}, {Key: "timestamp", Value: 1}}},
		},
	}

	for coll, indexes := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// nextID atomically allocates the next numeric id for the named sequence.
func nextID(ctx context.Context, db *mongo.Database, sequence string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Value int64 `bson:"value"`
	}
	err := db.Collection(collectionCounters).FindOneAndUpdate(
		ctx,
		bson.M{"_id": sequence},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", sequence, err)
	}
	return doc.Value, nil
}
