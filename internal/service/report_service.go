package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"reservas/internal/apperrors"
	"reservas/internal/entities"
)

// ReportService serves the two aggregate reports: most-reserved vehicle and
// top-N cancelling users.
type ReportService struct {
	reservations ReservationRepository
	users        UserRepository
	vehicles     VehicleRepository
	log          *zap.Logger
}

func NewReportService(reservations ReservationRepository, users UserRepository, vehicles VehicleRepository, log *zap.Logger) *ReportService {
	return &ReportService{
		reservations: reservations,
		users:        users,
		vehicles:     vehicles,
		log:          log,
	}
}

// MostReservedVehicle returns the vehicle with the highest reservation count
// (ties broken on vehicle id by the pipeline). Not found when no reservations
// exist at all, or when the top vehicle no longer resolves to a record.
func (s *ReportService) MostReservedVehicle(ctx context.Context) (*entities.MostReservedVehicleResponse, error) {
	top, err := s.reservations.MostReservedVehicle(ctx)
	if err != nil {
		return nil, apperrors.Internal("error aggregating reservations", err)
	}
	if top == nil {
		return nil, apperrors.NotFound("no reservations found")
	}

	vehicle, err := s.vehicles.GetByID(ctx, top.VehicleID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("vehicle not found")
		}
		return nil, apperrors.Internal("error looking up vehicle", err)
	}

	return &entities.MostReservedVehicleResponse{
		VehicleID:        top.VehicleID.Hex(),
		ReservationCount: top.Count,
		Vehicle:          *vehicle,
	}, nil
}

// TopCancellingUsers returns the limit users with the most cancellation
// records, each enriched with the current user document. Users that no longer
// resolve are dropped from the result.
func (s *ReportService) TopCancellingUsers(ctx context.Context, limit int) ([]entities.TopCancellingUser, error) {
	if limit <= 0 {
		return nil, apperrors.InvalidArgument("'limit' must be a positive integer")
	}

	rows, err := s.reservations.TopCancellingUsers(ctx, limit)
	if err != nil {
		return nil, apperrors.Internal("error aggregating cancellations", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound("no cancellations found")
	}

	results := make([]entities.TopCancellingUser, 0, len(rows))
	for _, row := range rows {
		user, err := s.users.GetByID(ctx, row.UserID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				s.log.Warn("dropping cancellation report entry for missing user",
					zap.String("user_id", row.UserID.Hex()))
				continue
			}
			return nil, apperrors.Internal("error looking up user", err)
		}
		results = append(results, entities.TopCancellingUser{
			UserID:            row.UserID.Hex(),
			CancellationCount: row.Count,
			User:              *user,
		})
	}

	return results, nil
}
