// Package service contains the business logic for the travel journal API.
// Services validate inputs, enforce ownership, orchestrate repo calls and
// trigger a journal reload after every successful mutation.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/repo"
	"github.com/pkordes/travel-journal/backend/internal/timeline"
)

// Loader returns a freshly computed read-model for a user.
type Loader interface {
	Load(ctx context.Context, userID uuid.UUID) domain.ReadModel
}

// Reloader is notified after each mutation. *journal.Journal implements it.
type Reloader interface {
	Loader
	Reload(ctx context.Context, userID uuid.UUID, c domain.Collection) domain.ReadModel
}

// nopReloader is used when a service is constructed without a Reloader.
type nopReloader struct{}

func (nopReloader) Load(context.Context, uuid.UUID) domain.ReadModel { return domain.ReadModel{} }
func (nopReloader) Reload(context.Context, uuid.UUID, domain.Collection) domain.ReadModel {
	return domain.ReadModel{}
}

func orNop(r Reloader) Reloader {
	if r == nil {
		return nopReloader{}
	}
	return r
}

// ---- validation helpers ----------------------------------------------------

// checkLength validates the trimmed rune length of a required text field.
func checkLength(fe domain.FieldErrors, field, value string, min, max int) {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	switch {
	case n == 0:
		fe.Add(field, "is required")
	case n < min:
		fe.Add(field, fmt.Sprintf("must be at least %d characters", min))
	case n > max:
		fe.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

// checkOptionalLength validates an optional text field only when present.
func checkOptionalLength(fe domain.FieldErrors, field string, value *string, min int) {
	if value == nil {
		return
	}
	if utf8.RuneCountInString(strings.TrimSpace(*value)) < min {
		fe.Add(field, fmt.Sprintf("must be at least %d characters", min))
	}
}

func checkRange(fe domain.FieldErrors, field string, value *int, min, max int) {
	if value == nil {
		return
	}
	if *value < min || *value > max {
		fe.Add(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
}

func checkCost(fe domain.FieldErrors, cost *float64) {
	if cost != nil && *cost < 0 {
		fe.Add("cost", "must not be negative")
	}
}

// checkSpan rejects an end timestamp before its start.
func checkSpan(fe domain.FieldErrors, field string, from, to *time.Time) {
	if from != nil && to != nil && to.Before(*from) {
		fe.Add(field, "must not be before the start")
	}
}

func checkDate(fe domain.FieldErrors, field string, value *string) {
	if value == nil {
		return
	}
	if _, err := time.Parse(timeline.DateLayout, *value); err != nil {
		fe.Add(field, "must be a date formatted YYYY-MM-DD")
	}
}

// trimPtr trims an optional string, turning blank into nil.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// checkCategory verifies that an optional category reference belongs to userID.
func checkCategory(ctx context.Context, categories repo.CategoryRepo, fe domain.FieldErrors, userID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	_, err := categories.GetByID(ctx, userID, *id)
	if errors.Is(err, domain.ErrNotFound) {
		fe.Add("category_id", "unknown category")
		return nil
	}
	return err
}

// checkAdventure verifies that adventureID belongs to userID. A foreign or
// missing adventure is reported as domain.ErrNotFound.
func checkAdventure(ctx context.Context, adventures repo.AdventureRepo, userID, adventureID uuid.UUID) error {
	_, err := adventures.GetByID(ctx, userID, adventureID)
	return err
}
