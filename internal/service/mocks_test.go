package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"reservas/internal/db"
	"reservas/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]db.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*db.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string, exclude *primitive.ObjectID) (*db.User, error) {
	args := m.Called(ctx, email, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.User), args.Error(1)
}

func (m *MockUserRepository) Insert(ctx context.Context, user *db.User) error {
	args := m.Called(ctx, user)
	if user != nil && user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id primitive.ObjectID, name, email, phone string) error {
	args := m.Called(ctx, id, name, email, phone)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) AppendHistory(ctx context.Context, userID primitive.ObjectID, entry db.HistoryEntry) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *MockUserRepository) CancelHistoryEntry(ctx context.Context, userID, reservationID primitive.ObjectID, suspended bool) error {
	args := m.Called(ctx, userID, reservationID, suspended)
	return args.Error(0)
}

func (m *MockUserRepository) SetSuspended(ctx context.Context, userID primitive.ObjectID, suspended bool) error {
	args := m.Called(ctx, userID, suspended)
	return args.Error(0)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) List(ctx context.Context) ([]db.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*db.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByPlate(ctx context.Context, plate string, exclude *primitive.ObjectID) (*db.Vehicle, error) {
	args := m.Called(ctx, plate, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Insert(ctx context.Context, vehicle *db.Vehicle) error {
	args := m.Called(ctx, vehicle)
	if vehicle != nil && vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, id primitive.ObjectID, plate, vehicleType string, available bool) error {
	args := m.Called(ctx, id, plate, vehicleType, available)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) List(ctx context.Context) ([]db.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]db.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*db.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindOverlapping(ctx context.Context, vehicleID primitive.ObjectID, start, end time.Time) ([]db.Reservation, error) {
	args := m.Called(ctx, vehicleID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Insert(ctx context.Context, reservation *db.Reservation) error {
	args := m.Called(ctx, reservation)
	if reservation != nil && reservation.ID.IsZero() {
		reservation.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockReservationRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReservationRepository) InsertCancellation(ctx context.Context, cancellation *db.Cancellation) error {
	args := m.Called(ctx, cancellation)
	return args.Error(0)
}

func (m *MockReservationRepository) CountCancellationsSince(ctx context.Context, userID primitive.ObjectID, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, userID, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) DeleteCancellationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) MostReservedVehicle(ctx context.Context) (*repository.VehicleReservationCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.VehicleReservationCount), args.Error(1)
}

func (m *MockReservationRepository) TopCancellingUsers(ctx context.Context, limit int) ([]repository.UserCancellationCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserCancellationCount), args.Error(1)
}
