package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"reservas/internal/db"
)

// VehicleReservationCount is one row of the reservations-per-vehicle
// aggregation.
type VehicleReservationCount struct {
	VehicleID primitive.ObjectID `bson:"_id"`
	Count     int64              `bson:"count"`
}

// UserCancellationCount is one row of the cancellations-per-user aggregation.
type UserCancellationCount struct {
	UserID primitive.ObjectID `bson:"_id"`
	Count  int64              `bson:"count"`
}

type ReservationRepository struct {
	reservations  *mongo.Collection
	cancellations *mongo.Collection
}

func NewReservationRepository(database *mongo.Database) *ReservationRepository {
	return &ReservationRepository{
		reservations:  database.Collection(db.ReservationsCollection),
		cancellations: database.Collection(db.CancellationsCollection),
	}
}

func (r *ReservationRepository) List(ctx context.Context) ([]db.Reservation, error) {
	return r.find(ctx, bson.M{})
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]db.Reservation, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *ReservationRepository) find(ctx context.Context, filter bson.M) ([]db.Reservation, error) {
	cursor, err := r.reservations.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []db.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return reservations, nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*db.Reservation, error) {
	var reservation db.Reservation
	if err := r.reservations.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation); err != nil {
		return nil, fmt.Errorf("error querying reservation %s: %w", id.Hex(), err)
	}
	return &reservation, nil
}

// overlapFilter selects active reservations for the vehicle whose inclusive
// [start_date, end_date] range intersects [start, end]. Two ranges [a,b] and
// [c,d] intersect iff a <= d AND c <= b; the filter encodes that single
// symmetric condition so ranges that merely touch on a boundary day conflict.
func overlapFilter(vehicleID primitive.ObjectID, start, end time.Time) bson.M {
	return bson.M{
		"vehicle_id": vehicleID,
		"status":     db.ReservationActive,
		"start_date": bson.M{"$lte": end},
		"end_date":   bson.M{"$gte": start},
	}
}

// FindOverlapping returns every active reservation for the vehicle whose date
// range intersects the given one. An empty result means no conflict.
func (r *ReservationRepository) FindOverlapping(ctx context.Context, vehicleID primitive.ObjectID, start, end time.Time) ([]db.Reservation, error) {
	return r.find(ctx, overlapFilter(vehicleID, start, end))
}

func (r *ReservationRepository) Insert(ctx context.Context, reservation *db.Reservation) error {
	result, err := r.reservations.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("error inserting reservation: %w", err)
	}
	reservation.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ReservationRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"status": status}}
	if _, err := r.reservations.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("error updating reservation %s status: %w", id.Hex(), err)
	}
	return nil
}

func (r *ReservationRepository) InsertCancellation(ctx context.Context, cancellation *db.Cancellation) error {
	result, err := r.cancellations.InsertOne(ctx, cancellation)
	if err != nil {
		return fmt.Errorf("error inserting cancellation record: %w", err)
	}
	cancellation.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// CountCancellationsSince counts the user's cancellation records with a
// timestamp at or after the cutoff.
func (r *ReservationRepository) CountCancellationsSince(ctx context.Context, userID primitive.ObjectID, cutoff time.Time) (int64, error) {
	filter := bson.M{"user_id": userID, "date": bson.M{"$gte": cutoff}}
	count, err := r.cancellations.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting cancellations for user %s: %w", userID.Hex(), err)
	}
	return count, nil
}

// DeleteCancellationsBefore removes cancellation records older than the
// cutoff. Records past the rolling window can never affect the suspension
// count, so this is pure retention.
func (r *ReservationRepository) DeleteCancellationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.cancellations.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("error deleting expired cancellations: %w", err)
	}
	return result.DeletedCount, nil
}

// MostReservedVehicle groups all reservations by vehicle and returns the top
// count. Ties break deterministically on vehicle id.
func (r *ReservationRepository) MostReservedVehicle(ctx context.Context) (*VehicleReservationCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$vehicle_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: 1}},
	}

	rows, err := r.aggregateVehicleCounts(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *ReservationRepository) aggregateVehicleCounts(ctx context.Context, pipeline mongo.Pipeline) ([]VehicleReservationCount, error) {
	cursor, err := r.reservations.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []VehicleReservationCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding reservation aggregation: %w", err)
	}
	return rows, nil
}

// TopCancellingUsers groups cancellation records by user and returns the
// limit highest counts, ties broken on user id.
func (r *ReservationRepository) TopCancellingUsers(ctx context.Context, limit int) ([]UserCancellationCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.cancellations.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating cancellations: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []UserCancellationCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding cancellation aggregation: %w", err)
	}
	return rows, nil
}
