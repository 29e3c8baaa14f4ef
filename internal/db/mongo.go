package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection         = "users"
	VehiclesCollection      = "vehicles"
	ReservationsCollection  = "reservations"
	CancellationsCollection = "cancellations"
)

// Connect opens a client, pings the deployment and returns a database handle.
// The handle is injected into repositories; there is no package-level state.
func Connect(ctx context.Context, uri, name string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client.Database(name), nil
}

// Disconnect closes the underlying client of the given database handle.
func Disconnect(ctx context.Context, database *mongo.Database) error {
	return database.Client().Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the validation layer relies on:
// one email per user, one plate per vehicle, and a lookup index for the
// rolling cancellation count.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := database.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("failed to create users.email index: %w", err)
	}

	_, err = database.Collection(VehiclesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "plate", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("failed to create vehicles.plate index: %w", err)
	}

	_, err = database.Collection(CancellationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create cancellations index: %w", err)
	}

	return nil
}
