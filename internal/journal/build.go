package journal

import (
	"time"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/timeline"
)

// Build derives the read-model from a snapshot as of now.
// It never mutates s and keeps no state between calls, so building twice
// from the same snapshot at the same instant yields identical output.
func Build(s Snapshot, now time.Time) domain.ReadModel {
	idx := BuildIndex(s)

	adventures := make([]domain.ResolvedAdventure, 0, len(s.Adventures))
	for _, a := range s.Adventures {
		adventures = append(adventures, resolveAdventure(a, idx, now))
	}

	categories := make([]domain.Category, len(s.Categories))
	copy(categories, s.Categories)

	return domain.ReadModel{Adventures: adventures, Categories: categories}
}

// resolveAdventure runs the timeline for a and merges in categories and
// grouped sub-records.
func resolveAdventure(a domain.Adventure, idx Index, now time.Time) domain.ResolvedAdventure {
	res := timeline.Resolve(a.StartDate, idx.VisitsByAdventure[a.ID], now)

	for i := range res.Visits {
		res.Visits[i].Category = idx.category(res.Visits[i].CategoryID)
	}

	view := a
	view.StartDate = timeline.NormalizeDate(a.StartDate)

	return domain.ResolvedAdventure{
		Adventure:       view,
		EndDate:         res.EndDate,
		DayDuration:     res.DayDuration,
		Category:        idx.category(a.CategoryID),
		Visits:          res.Visits,
		Activities:      activityViews(idx.ActivitiesByAdventure[a.ID]),
		Lodgings:        lodgingViews(idx.LodgingsByAdventure[a.ID]),
		Transportations: transportationViews(idx.TransportationsByAdventure[a.ID]),
	}
}

func activityViews(items []domain.Activity) []domain.ActivityView {
	out := make([]domain.ActivityView, 0, len(items))
	for _, it := range items {
		out = append(out, domain.ActivityView{
			ID:          it.ID,
			AdventureID: it.AdventureID,
			Name:        it.Name,
			Location:    it.Location,
			Cost:        it.Cost,
			At:          timeline.FormatTimestamp(it.At),
		})
	}
	return out
}

func lodgingViews(items []domain.Lodging) []domain.LodgingView {
	out := make([]domain.LodgingView, 0, len(items))
	for _, it := range items {
		out = append(out, domain.LodgingView{
			ID:          it.ID,
			AdventureID: it.AdventureID,
			Location:    it.Location,
			Company:     it.Company,
			Reservation: it.Reservation,
			Cost:        it.Cost,
			FromAt:      timeline.FormatTimestamp(it.FromAt),
			ToAt:        timeline.FormatTimestamp(it.ToAt),
		})
	}
	return out
}

func transportationViews(items []domain.Transportation) []domain.TransportationView {
	out := make([]domain.TransportationView, 0, len(items))
	for _, it := range items {
		out = append(out, domain.TransportationView{
			ID:          it.ID,
			AdventureID: it.AdventureID,
			Type:        it.Type,
			Company:     it.Company,
			Reservation: it.Reservation,
			Cost:        it.Cost,
			From:        it.From,
			FromAt:      timeline.FormatTimestamp(it.FromAt),
			To:          it.To,
			ToAt:        timeline.FormatTimestamp(it.ToAt),
		})
	}
	return out
}
