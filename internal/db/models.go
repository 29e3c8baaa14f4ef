package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reservation status values. A reservation only ever moves active -> cancelled.
const (
	ReservationActive    = "active"
	ReservationCancelled = "cancelled"
)

// History entry status values kept in sync with the owning reservation.
const (
	HistoryConfirmed = "confirmed"
	HistoryCancelled = "cancelled"
)

// HistoryEntry is the denormalized reservation summary stored inside a user.
type HistoryEntry struct {
	ReservationID primitive.ObjectID `bson:"reservation_id" json:"reservation_id"`
	Date          time.Time          `bson:"date" json:"date"`
	Status        string             `bson:"status" json:"status"`
}

type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	Phone              string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Suspended          bool               `bson:"suspended" json:"suspended"`
	ReservationHistory []HistoryEntry     `bson:"reservation_history" json:"reservation_history"`
}

type Vehicle struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Plate     string             `bson:"plate" json:"plate"`
	Type      string             `bson:"type" json:"type"`
	Available bool               `bson:"available" json:"available"`
}

// Reservation start/end dates are normalized to midnight UTC; the range is
// inclusive on both ends.
type Reservation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	VehicleID primitive.ObjectID `bson:"vehicle_id" json:"vehicle_id"`
	StartDate time.Time          `bson:"start_date" json:"start_date"`
	EndDate   time.Time          `bson:"end_date" json:"end_date"`
	Status    string             `bson:"status" json:"status"`
}

// Cancellation is one append-only audit row per cancellation event. The
// rolling 7-day count of these rows drives the user suspension rule.
type Cancellation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date          time.Time          `bson:"date" json:"date"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	ReservationID primitive.ObjectID `bson:"reservation_id" json:"reservation_id"`
}
