package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a user-defined label for adventures and visits.
// Name is the slug of DisplayName: lowercase, accents stripped, hyphenated.
type Category struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	UserID      uuid.UUID `json:"user_id" yaml:"user_id"`
	Name        string    `json:"name" yaml:"name"`
	DisplayName string    `json:"display_name" yaml:"display_name"`
	Icon        string    `json:"icon" yaml:"icon"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at,omitempty"`
}
