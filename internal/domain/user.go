package domain

import (
	"time"

	"github.com/google/uuid"
)

// User owns adventures and categories. Users are provisioned the first time
// a trusted proxy header names them; there is no password.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Address is the normalized result of a geocoding lookup.
type Address struct {
	City      string  `json:"city"`
	State     string  `json:"state"`
	PostCode  string  `json:"postCode"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
