package domain

import "time"

// DateLayout is the calendar format used for reservation dates.
const DateLayout = "2006-01-02"

// Reservation is a table booking. Owner is the username of the account that
// created it and is always taken from the authenticated principal.
type Reservation struct {
	ID           string    `json:"id"`
	Owner        string    `json:"usuario"`
	CitizenID    string    `json:"cedula,omitempty"`
	CustomerName string    `json:"nombreCliente"`
	Date         string    `json:"fecha"`
	PartySize    int       `json:"numeroPersonas"`
	Version      int64     `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

