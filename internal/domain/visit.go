package domain

import (
	"time"

	"github.com/google/uuid"
)

// Visit is a stop within an adventure. Order is the sequencing key; values
// need not be contiguous or unique. A visit has no stored dates: they are
// derived at read time from the adventure start date and the durations of
// the visits before it.
type Visit struct {
	ID          uuid.UUID  `json:"id" yaml:"id"`
	AdventureID uuid.UUID  `json:"adventure_id" yaml:"adventure_id"`
	CategoryID  *uuid.UUID `json:"category_id" yaml:"category_id,omitempty"`
	DayDuration *int       `json:"day_duration" yaml:"day_duration,omitempty"`
	Location    string     `json:"location" yaml:"location"`
	Latitude    float64    `json:"latitude" yaml:"latitude"`
	Longitude   float64    `json:"longitude" yaml:"longitude"`
	Rating      *int       `json:"rating" yaml:"rating,omitempty"`
	Order       int        `json:"order" yaml:"order"`
	Notes       *string    `json:"notes" yaml:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at,omitempty"`
}

// Days returns DayDuration, treating an absent duration as zero.
func (v Visit) Days() int {
	if v.DayDuration == nil {
		return 0
	}
	return *v.DayDuration
}
