package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"reservas/internal/apperrors"
	"reservas/internal/db"
	"reservas/internal/entities"
)

type VehicleService struct {
	vehicles VehicleRepository
	log      *zap.Logger
}

func NewVehicleService(vehicles VehicleRepository, log *zap.Logger) *VehicleService {
	return &VehicleService{vehicles: vehicles, log: log}
}

func (s *VehicleService) List(ctx context.Context) ([]db.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("error listing vehicles", err)
	}
	return vehicles, nil
}

func (s *VehicleService) Get(ctx context.Context, id string) (*db.Vehicle, error) {
	vehicleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid vehicle id")
	}

	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("vehicle not found")
		}
		return nil, apperrors.Internal("error looking up vehicle", err)
	}
	return vehicle, nil
}

// Create registers a vehicle; new vehicles start out available.
func (s *VehicleService) Create(ctx context.Context, req entities.CreateVehicleRequest) (*db.Vehicle, error) {
	if req.Plate == "" || req.Type == "" {
		return nil, apperrors.InvalidArgument("missing required fields, please ensure your data includes 'plate' and 'type'")
	}

	existing, err := s.vehicles.FindByPlate(ctx, req.Plate, nil)
	if err != nil {
		return nil, apperrors.Internal("error checking plate uniqueness", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("vehicle already exists", nil)
	}

	vehicle := &db.Vehicle{
		Plate:     req.Plate,
		Type:      req.Type,
		Available: true,
	}
	if err := s.vehicles.Insert(ctx, vehicle); err != nil {
		return nil, apperrors.Internal("error creating vehicle", err)
	}

	s.log.Info("vehicle created", zap.String("vehicle_id", vehicle.ID.Hex()), zap.String("plate", vehicle.Plate))
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, id string, req entities.UpdateVehicleRequest) (*entities.IDResponse, error) {
	vehicleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid vehicle id")
	}
	if req.Plate == "" || req.Type == "" || req.Available == nil {
		return nil, apperrors.InvalidArgument("missing required fields, please ensure your data includes 'plate', 'type' and 'available'")
	}

	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("vehicle not found")
		}
		return nil, apperrors.Internal("error looking up vehicle", err)
	}

	existing, err := s.vehicles.FindByPlate(ctx, req.Plate, &vehicleID)
	if err != nil {
		return nil, apperrors.Internal("error checking plate uniqueness", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("vehicle already exists", nil)
	}

	if err := s.vehicles.Update(ctx, vehicleID, req.Plate, req.Type, *req.Available); err != nil {
		return nil, apperrors.Internal("error updating vehicle", err)
	}
	return &entities.IDResponse{ID: vehicleID.Hex()}, nil
}

func (s *VehicleService) Delete(ctx context.Context, id string) (*entities.IDResponse, error) {
	vehicleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid vehicle id")
	}

	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("vehicle not found")
		}
		return nil, apperrors.Internal("error looking up vehicle", err)
	}

	if err := s.vehicles.Delete(ctx, vehicleID); err != nil {
		return nil, apperrors.Internal("error deleting vehicle", err)
	}

	s.log.Info("vehicle deleted", zap.String("vehicle_id", vehicleID.Hex()))
	return &entities.IDResponse{ID: vehicleID.Hex()}, nil
}
