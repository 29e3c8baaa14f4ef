package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"reservas/internal/apperrors"
	"reservas/internal/db"
	"reservas/internal/entities"
)

const (
	dateLayout = "2006-01-02"

	// A user is suspended when they accumulate more than
	// suspensionThreshold cancellations inside the rolling window.
	suspensionWindow    = 7 * 24 * time.Hour
	suspensionThreshold = 3
)

// ReservationService is the reservation lifecycle manager: creation with the
// overlap check, cancellation with the penalty rule, and explicit user
// reactivation.
type ReservationService struct {
	reservations ReservationRepository
	users        UserRepository
	vehicles     VehicleRepository
	sender       NotificationSender
	locks        *vehicleLocks
	log          *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewReservationService(reservations ReservationRepository, users UserRepository, vehicles VehicleRepository, sender NotificationSender, log *zap.Logger) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		users:        users,
		vehicles:     vehicles,
		sender:       sender,
		locks:        newVehicleLocks(),
		log:          log,
		now:          time.Now,
	}
}

// Create runs the full creation sequence: id parsing, user lookup and
// suspension gate, vehicle lookup, date parsing and validation, overlap
// check, insert, history append. The overlap check and insert run under a
// per-vehicle lock so concurrent requests cannot double-book a range.
func (s *ReservationService) Create(ctx context.Context, req entities.CreateReservationRequest) (*db.Reservation, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid user id")
	}
	vehicleID, err := primitive.ObjectIDFromHex(req.VehicleID)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid vehicle id")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("error looking up user", err)
	}
	if user.Suspended {
		return nil, apperrors.Forbidden("user temporarily blocked from making reservations")
	}

	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("vehicle not found")
		}
		return nil, apperrors.Internal("error looking up vehicle", err)
	}

	startDate, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid start date, expected YYYY-MM-DD")
	}
	endDate, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid end date, expected YYYY-MM-DD")
	}

	// startDate is compared to today as a bare calendar date; the
	// start/end ordering compares the parsed values directly (both are
	// already midnight UTC).
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	startDay := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	if startDate.After(endDate) || startDay.Before(today) {
		return nil, apperrors.InvalidArgument("invalid dates: the start date must not be in the past and the end date must not precede the start date")
	}

	unlock := s.locks.Lock(vehicleID.Hex())
	defer unlock()

	conflicts, err := s.reservations.FindOverlapping(ctx, vehicleID, startDate, endDate)
	if err != nil {
		return nil, apperrors.Internal("error checking for overlapping reservations", err)
	}
	if len(conflicts) > 0 {
		return nil, apperrors.Conflict("there are already active reservations for these dates", conflicts[0])
	}

	reservation := &db.Reservation{
		UserID:    userID,
		VehicleID: vehicleID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    db.ReservationActive,
	}
	if err := s.reservations.Insert(ctx, reservation); err != nil {
		return nil, apperrors.Internal("error creating reservation", err)
	}

	entry := db.HistoryEntry{
		ReservationID: reservation.ID,
		Date:          startDate,
		Status:        db.HistoryConfirmed,
	}
	if err := s.users.AppendHistory(ctx, userID, entry); err != nil {
		return nil, apperrors.Internal("error updating user reservation history", err)
	}

	s.log.Info("reservation created",
		zap.String("reservation_id", reservation.ID.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.String("vehicle_id", vehicleID.Hex()))

	if s.sender != nil {
		s.sender.ReservationCreated(*user, *vehicle, *reservation)
	}

	return reservation, nil
}

// Cancel flips the reservation to cancelled, logs a cancellation event,
// recounts the user's events inside the rolling window and overwrites the
// suspension flag together with the matching history entry. Cancelling an
// already-cancelled reservation succeeds and logs another event; the count
// is a full overwrite either way.
func (s *ReservationService) Cancel(ctx context.Context, id string) (*entities.CancelReservationResponse, error) {
	reservationID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid reservation id")
	}

	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("reservation not found")
		}
		return nil, apperrors.Internal("error looking up reservation", err)
	}

	if err := s.reservations.SetStatus(ctx, reservationID, db.ReservationCancelled); err != nil {
		return nil, apperrors.Internal("error cancelling reservation", err)
	}

	now := s.now().UTC()
	cancellation := &db.Cancellation{
		Date:          now,
		UserID:        reservation.UserID,
		ReservationID: reservationID,
	}
	if err := s.reservations.InsertCancellation(ctx, cancellation); err != nil {
		return nil, apperrors.Internal("error recording cancellation", err)
	}

	count, err := s.reservations.CountCancellationsSince(ctx, reservation.UserID, now.Add(-suspensionWindow))
	if err != nil {
		return nil, apperrors.Internal("error counting recent cancellations", err)
	}

	suspended := count > suspensionThreshold
	if err := s.users.CancelHistoryEntry(ctx, reservation.UserID, reservationID, suspended); err != nil {
		return nil, apperrors.Internal("error updating user after cancellation", err)
	}

	s.log.Info("reservation cancelled",
		zap.String("reservation_id", reservationID.Hex()),
		zap.String("user_id", reservation.UserID.Hex()),
		zap.Int64("cancellations_last_7d", count),
		zap.Bool("user_suspended", suspended))

	if s.sender != nil {
		if user, err := s.users.GetByID(ctx, reservation.UserID); err == nil {
			s.sender.ReservationCancelled(*user, *reservation)
		}
	}

	return &entities.CancelReservationResponse{
		Message:       "reservation cancelled",
		ReservationID: reservationID.Hex(),
	}, nil
}

// ReactivateUser unconditionally clears the suspension flag.
func (s *ReservationService) ReactivateUser(ctx context.Context, id string) (*entities.MessageResponse, error) {
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

	if err := s.users.SetSuspended(ctx, userID, false); err != nil {
		return nil, apperrors.Internal("error reactivating user", err)
	}

	s.log.Info("user reactivated", zap.String("user_id", userID.Hex()))
	return &entities.MessageResponse{Message: "user " + userID.Hex() + " reactivated"}, nil
}

func (s *ReservationService) List(ctx context.Context) ([]db.Reservation, error) {
	reservations, err := s.reservations.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("error listing reservations", err)
	}
	return reservations, nil
}

// ListByUser returns a user's reservations, validating the user exists first.
func (s *ReservationService) ListByUser(ctx context.Context, id string) ([]db.Reservation, error) {
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

	reservations, err := s.reservations.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("error listing user reservations", err)
	}
	return reservations, nil
}
