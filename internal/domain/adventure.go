// Package domain contains the core data types for the travel journal.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, journal, timeline, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Adventure is a trip. It is the top-level aggregate; visits, activities,
// lodgings and transportations point back to it through AdventureID.
//
// StartDate is the stored calendar date ("2006-01-02"). Nil means the trip
// has not been anchored to real dates, so its visits cannot be dated.
type Adventure struct {
	ID          uuid.UUID  `json:"id" yaml:"id"`
	UserID      uuid.UUID  `json:"user_id" yaml:"user_id"`
	Name        string     `json:"name" yaml:"name"`
	Description *string    `json:"description" yaml:"description,omitempty"`
	Rating      *int       `json:"rating" yaml:"rating,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id" yaml:"category_id,omitempty"`
	StartDate   *string    `json:"start_date" yaml:"start_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at,omitempty"`
}
