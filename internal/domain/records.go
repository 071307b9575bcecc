package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is something done during an adventure. It has no ordering or
// derivation logic; it is grouped under its adventure as-is.
type Activity struct {
	ID          uuid.UUID  `json:"id" yaml:"id"`
	AdventureID uuid.UUID  `json:"adventure_id" yaml:"adventure_id"`
	Name        string     `json:"name" yaml:"name"`
	Location    string     `json:"location" yaml:"location"`
	Cost        *float64   `json:"cost" yaml:"cost,omitempty"`
	At          *time.Time `json:"at" yaml:"at,omitempty"`
}

// Lodging is a place slept in during an adventure.
type Lodging struct {
	ID          uuid.UUID  `json:"id" yaml:"id"`
	AdventureID uuid.UUID  `json:"adventure_id" yaml:"adventure_id"`
	Location    string     `json:"location" yaml:"location"`
	Company     string     `json:"company" yaml:"company"`
	Reservation string     `json:"reservation" yaml:"reservation"`
	Cost        *float64   `json:"cost" yaml:"cost,omitempty"`
	FromAt      *time.Time `json:"from_at" yaml:"from_at,omitempty"`
	ToAt        *time.Time `json:"to_at" yaml:"to_at,omitempty"`
}

// Transportation is one travel segment (flight, train, car hire...).
type Transportation struct {
	ID          uuid.UUID  `json:"id" yaml:"id"`
	AdventureID uuid.UUID  `json:"adventure_id" yaml:"adventure_id"`
	Type        string     `json:"type" yaml:"type"`
	Company     string     `json:"company" yaml:"company"`
	Reservation string     `json:"reservation" yaml:"reservation"`
	Cost        *float64   `json:"cost" yaml:"cost,omitempty"`
	From        string     `json:"from" yaml:"from"`
	FromAt      *time.Time `json:"from_at" yaml:"from_at,omitempty"`
	To          string     `json:"to" yaml:"to"`
	ToAt        *time.Time `json:"to_at" yaml:"to_at,omitempty"`
}
