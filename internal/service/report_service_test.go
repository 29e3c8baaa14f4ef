package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"reservas/internal/apperrors"
	"reservas/internal/db"
	"reservas/internal/repository"
)

func newTestReportService(reservations *MockReservationRepository, users *MockUserRepository, vehicles *MockVehicleRepository) *ReportService {
	return NewReportService(reservations, users, vehicles, zap.NewNop())
}

func TestMostReservedVehicle_Success(t *testing.T) {
	reservations := new(MockReservationRepository)
	users := new(MockUserRepository)
	vehicles := new(MockVehicleRepository)
	svc := newTestReportService(reservations, users, vehicles)

	vehicleID := primitive.NewObjectID()
	reservations.On("MostReservedVehicle", mock.Anything).
		Return(&repository.VehicleReservationCount{VehicleID: vehicleID, Count: 7}, nil)
	vehicles.On("GetByID", mock.Anything, vehicleID).
		Return(&db.Vehicle{ID: vehicleID, Plate: "ABC123"}, nil)

	resp, err := svc.MostReservedVehicle(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, vehicleID.Hex(), resp.VehicleID)
	assert.Equal(t, int64(7), resp.ReservationCount)
	assert.Equal(t, "ABC123", resp.Vehicle.Plate)
}

func TestMostReservedVehicle_NoReservations(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := newTestReportService(reservations, new(MockUserRepository), new(MockVehicleRepository))

	reservations.On("MostReservedVehicle", mock.Anything).Return(nil, nil)

	_, err := svc.MostReservedVehicle(context.Background())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestMostReservedVehicle_TopVehicleNoLongerExists(t *testing.T) {
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)
	svc := newTestReportService(reservations, new(MockUserRepository), vehicles)

	vehicleID := primitive.NewObjectID()
	reservations.On("MostReservedVehicle", mock.Anything).
		Return(&repository.VehicleReservationCount{VehicleID: vehicleID, Count: 3}, nil)
	vehicles.On("GetByID", mock.Anything, vehicleID).Return(nil, notFoundErr("vehicle"))

	_, err := svc.MostReservedVehicle(context.Background())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestTopCancellingUsers_NonPositiveLimit(t *testing.T) {
	svc := newTestReportService(new(MockReservationRepository), new(MockUserRepository), new(MockVehicleRepository))

	for _, limit := range []int{0, -5} {
		_, err := svc.TopCancellingUsers(context.Background(), limit)
		assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
	}
}

func TestTopCancellingUsers_NoCancellations(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := newTestReportService(reservations, new(MockUserRepository), new(MockVehicleRepository))

	reservations.On("TopCancellingUsers", mock.Anything, 3).Return([]repository.UserCancellationCount{}, nil)

	_, err := svc.TopCancellingUsers(context.Background(), 3)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestTopCancellingUsers_DropsUnresolvableUsers(t *testing.T) {
	reservations := new(MockReservationRepository)
	users := new(MockUserRepository)
	svc := newTestReportService(reservations, users, new(MockVehicleRepository))

	existingID := primitive.NewObjectID()
	missingID := primitive.NewObjectID()
	reservations.On("TopCancellingUsers", mock.Anything, 2).Return([]repository.UserCancellationCount{
		{UserID: missingID, Count: 9},
		{UserID: existingID, Count: 4},
	}, nil)
	users.On("GetByID", mock.Anything, missingID).Return(nil, notFoundErr("user"))
	users.On("GetByID", mock.Anything, existingID).Return(&db.User{ID: existingID, Name: "Ana"}, nil)

	resp, err := svc.TopCancellingUsers(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, existingID.Hex(), resp[0].UserID)
	assert.Equal(t, int64(4), resp[0].CancellationCount)
}
