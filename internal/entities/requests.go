package entities

// User create/update payload. Phone is optional and only used for SMS
// notifications.
type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type CreateVehicleRequest struct {
	Plate string `json:"plate"`
	Type  string `json:"type"`
}

type UpdateVehicleRequest struct {
	Plate     string `json:"plate"`
	Type      string `json:"type"`
	Available *bool  `json:"available"`
}

// CreateReservationRequest carries ids and calendar dates as strings; the
// service parses and validates them (dates use the 2006-01-02 layout).
type CreateReservationRequest struct {
	UserID    string `json:"user_id"`
	VehicleID string `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
