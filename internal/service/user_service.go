package service

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"reservas/internal/apperrors"
	"reservas/internal/db"
	"reservas/internal/entities"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

type UserService struct {
	users UserRepository
	log   *zap.Logger
}

func NewUserService(users UserRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) List(ctx context.Context) ([]db.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("error listing users", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*db.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid user id")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("error looking up user", err)
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, req entities.UserRequest) (*db.User, error) {
	if err := validateUserRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, req.Email, nil)
	if err != nil {
		return nil, apperrors.Internal("error checking email uniqueness", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("email already exists", nil)
	}

	user := &db.User{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Suspended:          false,
		ReservationHistory: []db.HistoryEntry{},
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, apperrors.Internal("error creating user", err)
	}

	s.log.Info("user created", zap.String("user_id", user.ID.Hex()))
	return user, nil
}

// Update changes name, email and phone only; reservation history and the
// suspension flag belong to the reservation lifecycle and are left intact.
func (s *UserService) Update(ctx context.Context, id string, req entities.UserRequest) (*entities.IDResponse, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid user id")
	}
	if err := validateUserRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("error looking up user", err)
	}

	existing, err := s.users.FindByEmail(ctx, req.Email, &userID)
	if err != nil {
		return nil, apperrors.Internal("error checking email uniqueness", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("email already exists", nil)
	}

	if err := s.users.Update(ctx, userID, req.Name, req.Email, req.Phone); err != nil {
		return nil, apperrors.Internal("error updating user", err)
	}
	return &entities.IDResponse{ID: userID.Hex()}, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*entities.IDResponse, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid user id")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("error looking up user", err)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return nil, apperrors.Internal("error deleting user", err)
	}

	s.log.Info("user deleted", zap.String("user_id", userID.Hex()))
	return &entities.IDResponse{ID: userID.Hex()}, nil
}

func validateUserRequest(req entities.UserRequest) error {
	if req.Name == "" || req.Email == "" {
		return apperrors.InvalidArgument("missing required fields, please ensure your data includes 'name' and 'email'")
	}
	if !emailRegex.MatchString(req.Email) {
		return apperrors.InvalidArgument("invalid email")
	}
	return nil
}
