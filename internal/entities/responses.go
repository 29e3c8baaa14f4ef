package entities

import "reservas/internal/db"

type IDResponse struct {
	ID string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CancelReservationResponse struct {
	Message       string `json:"message"`
	ReservationID string `json:"reservation_id"`
}

type MostReservedVehicleResponse struct {
	VehicleID        string     `json:"vehicle_id"`
	ReservationCount int64      `json:"reservation_count"`
	Vehicle          db.Vehicle `json:"vehicle"`
}

type TopCancellingUser struct {
	UserID            string  `json:"user_id"`
	CancellationCount int64   `json:"cancellation_count"`
	User              db.User `json:"user"`
}
