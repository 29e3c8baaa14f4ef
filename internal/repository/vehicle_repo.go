package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"reservas/internal/db"
)

type VehicleRepository struct {
	vehicles *mongo.Collection
}

func NewVehicleRepository(database *mongo.Database) *VehicleRepository {
	return &VehicleRepository{vehicles: database.Collection(db.VehiclesCollection)}
}

func (r *VehicleRepository) List(ctx context.Context) ([]db.Vehicle, error) {
	cursor, err := r.vehicles.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []db.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("error decoding vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*db.Vehicle, error) {
	var vehicle db.Vehicle
	if err := r.vehicles.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle); err != nil {
		return nil, fmt.Errorf("error querying vehicle %s: %w", id.Hex(), err)
	}
	return &vehicle, nil
}

// FindByPlate looks up a vehicle by plate, optionally excluding one id.
func (r *VehicleRepository) FindByPlate(ctx context.Context, plate string, exclude *primitive.ObjectID) (*db.Vehicle, error) {
	filter := bson.M{"plate": plate}
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}

	var vehicle db.Vehicle
	err := r.vehicles.FindOne(ctx, filter).Decode(&vehicle)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying vehicle by plate: %w", err)
	}
	return &vehicle, nil
}

func (r *VehicleRepository) Insert(ctx context.Context, vehicle *db.Vehicle) error {
	result, err := r.vehicles.InsertOne(ctx, vehicle)
	if err != nil {
		return fmt.Errorf("error inserting vehicle: %w", err)
	}
	vehicle.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *VehicleRepository) Update(ctx context.Context, id primitive.ObjectID, plate, vehicleType string, available bool) error {
	update := bson.M{"$set": bson.M{"plate": plate, "type": vehicleType, "available": available}}
	if _, err := r.vehicles.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("error updating vehicle %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.vehicles.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("error deleting vehicle %s: %w", id.Hex(), err)
	}
	return nil
}
