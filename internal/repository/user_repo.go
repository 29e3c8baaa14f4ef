package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"reservas/internal/db"
)

type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{users: database.Collection(db.UsersCollection)}
}

func (r *UserRepository) List(ctx context.Context) ([]db.User, error) {
	cursor, err := r.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []db.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}
	return users, nil
}

// GetByID returns mongo.ErrNoDocuments (wrapped) when the user is absent;
// callers translate that into a not-found result.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*db.User, error) {
	var user db.User
	if err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, fmt.Errorf("error querying user %s: %w", id.Hex(), err)
	}
	return &user, nil
}

// FindByEmail looks up a user by email, optionally excluding one id (used by
// updates so a user keeps its own address).
func (r *UserRepository) FindByEmail(ctx context.Context, email string, exclude *primitive.ObjectID) (*db.User, error) {
	filter := bson.M{"email": email}
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}

	var user db.User
	err := r.users.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *db.User) error {
	result, err := r.users.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// Update sets name, email and phone only. Reservation history and the
// suspension flag are owned by the reservation lifecycle.
func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, name, email, phone string) error {
	update := bson.M{"$set": bson.M{"name": name, "email": email, "phone": phone}}
	if _, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("error updating user %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.users.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("error deleting user %s: %w", id.Hex(), err)
	}
	return nil
}

// AppendHistory pushes a reservation summary onto the user's history array.
func (r *UserRepository) AppendHistory(ctx context.Context, userID primitive.ObjectID, entry db.HistoryEntry) error {
	update := bson.M{"$push": bson.M{"reservation_history": entry}}
	if _, err := r.users.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		return fmt.Errorf("error appending reservation history for user %s: %w", userID.Hex(), err)
	}
	return nil
}

// CancelHistoryEntry marks the history entry matching the reservation as
// cancelled and overwrites the suspension flag in the same update, mirroring
// the single positional write the penalty rule requires.
func (r *UserRepository) CancelHistoryEntry(ctx context.Context, userID, reservationID primitive.ObjectID, suspended bool) error {
	filter := bson.M{"_id": userID, "reservation_history.reservation_id": reservationID}
	update := bson.M{"$set": bson.M{
		"reservation_history.$.status": db.HistoryCancelled,
		"suspended":                    suspended,
	}}
	if _, err := r.users.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error cancelling history entry for user %s: %w", userID.Hex(), err)
	}
	return nil
}

// SetSuspended overwrites the suspension flag (explicit reactivation).
func (r *UserRepository) SetSuspended(ctx context.Context, userID primitive.ObjectID, suspended bool) error {
	update := bson.M{"$set": bson.M{"suspended": suspended}}
	if _, err := r.users.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		return fmt.Errorf("error updating suspension flag for user %s: %w", userID.Hex(), err)
	}
	return nil
}
