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
	"reservas/internal/entities"
)

func TestCreateUser_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	users.On("FindByEmail", mock.Anything, "ana@example.com", (*primitive.ObjectID)(nil)).Return(nil, nil)
	users.On("Insert", mock.Anything, mock.MatchedBy(func(u *db.User) bool {
		return u.Name == "Ana" && u.Email == "ana@example.com" &&
			!u.Suspended && len(u.ReservationHistory) == 0
	})).Return(nil)

	user, err := svc.Create(context.Background(), entities.UserRequest{Name: "Ana", Email: "ana@example.com"})
	assert.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	users.AssertExpectations(t)
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  entities.UserRequest
	}{
		{"missing name", entities.UserRequest{Email: "ana@example.com"}},
		{"missing email", entities.UserRequest{Name: "Ana"}},
		{"invalid email", entities.UserRequest{Name: "Ana", Email: "not-an-email"}},
		{"email without domain", entities.UserRequest{Name: "Ana", Email: "ana@"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			svc := NewUserService(users, zap.NewNop())

			_, err := svc.Create(context.Background(), tt.req)
			assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
			users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	existing := &db.User{ID: primitive.NewObjectID(), Email: "ana@example.com"}
	users.On("FindByEmail", mock.Anything, "ana@example.com", (*primitive.ObjectID)(nil)).Return(existing, nil)

	_, err := svc.Create(context.Background(), entities.UserRequest{Name: "Ana", Email: "ana@example.com"})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestUpdateUser_KeepsOwnEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	userID := primitive.NewObjectID()
	users.On("GetByID", mock.Anything, userID).Return(&db.User{ID: userID}, nil)
	// uniqueness check excludes the user's own document
	users.On("FindByEmail", mock.Anything, "ana@example.com", &userID).Return(nil, nil)
	users.On("Update", mock.Anything, userID, "Ana", "ana@example.com", "").Return(nil)

	resp, err := svc.Update(context.Background(), userID.Hex(), entities.UserRequest{Name: "Ana", Email: "ana@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, userID.Hex(), resp.ID)
	users.AssertExpectations(t)
}

func TestUpdateUser_NotFound(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	userID := primitive.NewObjectID()
	users.On("GetByID", mock.Anything, userID).Return(nil, notFoundErr("user"))

	_, err := svc.Update(context.Background(), userID.Hex(), entities.UserRequest{Name: "Ana", Email: "ana@example.com"})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeleteUser_NotFound(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())

	userID := primitive.NewObjectID()
	users.On("GetByID", mock.Anything, userID).Return(nil, notFoundErr("user"))

	_, err := svc.Delete(context.Background(), userID.Hex())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGetUser_InvalidID(t *testing.T) {
	svc := NewUserService(new(MockUserRepository), zap.NewNop())

	_, err := svc.Get(context.Background(), "xyz")
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
}
