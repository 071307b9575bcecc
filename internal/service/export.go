package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// ExportService flattens a user's resolved itinerary into export rows.
type ExportService struct {
	journal Loader
}

// NewExportService constructs an ExportService reading from the journal.
func NewExportService(journal Loader) *ExportService {
	return &ExportService{journal: journal}
}

// Export returns one ExportRow per resolved visit across all adventures, in
// read-model order. Adventures with no visits contribute one row with empty
// visit fields.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID) []domain.ExportRow {
	rm := s.journal.Load(ctx, userID)
	return ExportRows(rm)
}

// ExportRows flattens an already computed read-model.
func ExportRows(rm domain.ReadModel) []domain.ExportRow {
	rows := []domain.ExportRow{}
	for _, a := range rm.Adventures {
		base := domain.ExportRow{
			AdventureID:        a.ID.String(),
			AdventureName:      a.Name,
			AdventureCategory:  categoryName(a.Category),
			AdventureStartDate: deref(a.StartDate),
			AdventureEndDate:   deref(a.EndDate),
			AdventureDays:      a.DayDuration,
		}
		if len(a.Visits) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, v := range a.Visits {
			row := base
			row.VisitOrder = v.Order
			row.VisitLocation = v.Location
			row.VisitCategory = categoryName(v.Category)
			row.VisitStart = deref(v.StartDate)
			row.VisitEnd = deref(v.EndDate)
			row.VisitDays = v.Days()
			row.VisitStatus = string(v.Status)
			row.VisitNotes = deref(v.Notes)
			rows = append(rows, row)
		}
	}
	return rows
}

func categoryName(c *domain.Category) string {
	if c == nil {
		return ""
	}
	return c.DisplayName
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
