package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"reservas/internal/db"
	"reservas/internal/repository"
)

// UserRepository is the users-collection surface the services consume.
type UserRepository interface {
	List(ctx context.Context) ([]db.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*db.User, error)
	FindByEmail(ctx context.Context, email string, exclude *primitive.ObjectID) (*db.User, error)
	Insert(ctx context.Context, user *db.User) error
	Update(ctx context.Context, id primitive.ObjectID, name, email, phone string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AppendHistory(ctx context.Context, userID primitive.ObjectID, entry db.HistoryEntry) error
	CancelHistoryEntry(ctx context.Context, userID, reservationID primitive.ObjectID, suspended bool) error
	SetSuspended(ctx context.Context, userID primitive.ObjectID, suspended bool) error
}

// VehicleRepository is the vehicles-collection surface the services consume.
type VehicleRepository interface {
	List(ctx context.Context) ([]db.Vehicle, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*db.Vehicle, error)
	FindByPlate(ctx context.Context, plate string, exclude *primitive.ObjectID) (*db.Vehicle, error)
	Insert(ctx context.Context, vehicle *db.Vehicle) error
	Update(ctx context.Context, id primitive.ObjectID, plate, vehicleType string, available bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ReservationRepository covers both the reservations collection and the
// append-only cancellations audit log.
type ReservationRepository interface {
	List(ctx context.Context) ([]db.Reservation, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]db.Reservation, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*db.Reservation, error)
	FindOverlapping(ctx context.Context, vehicleID primitive.ObjectID, start, end time.Time) ([]db.Reservation, error)
	Insert(ctx context.Context, reservation *db.Reservation) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	InsertCancellation(ctx context.Context, cancellation *db.Cancellation) error
	CountCancellationsSince(ctx context.Context, userID primitive.ObjectID, cutoff time.Time) (int64, error)
	DeleteCancellationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	MostReservedVehicle(ctx context.Context) (*repository.VehicleReservationCount, error)
	TopCancellingUsers(ctx context.Context, limit int) ([]repository.UserCancellationCount, error)
}

// NotificationSender delivers reservation notices. Implementations must not
// block the request path.
type NotificationSender interface {
	ReservationCreated(user db.User, vehicle db.Vehicle, reservation db.Reservation)
	ReservationCancelled(user db.User, reservation db.Reservation)
}
