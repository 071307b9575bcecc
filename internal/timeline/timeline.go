// Package timeline derives the dated itinerary of an adventure.
//
// Visits carry no dates of their own. Given the adventure start date and the
// visits in their explicit order, Resolve walks a day cursor forward by each
// visit's duration, assigning start and end dates and a past / current /
// future status relative to today. Everything here is pure: the same inputs
// always produce the same Result, and nothing is persisted.
package timeline

import (
	"slices"
	"time"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// Result is the derived itinerary of one adventure.
type Result struct {
	// Visits are in resolved order, without categories attached.
	Visits []domain.ResolvedVisit

	// EndDate is the final cursor position, nil when the adventure is undated.
	EndDate *string

	// DayDuration is the sum of every visit's duration, dated or not.
	DayDuration int
}

// SortVisits returns a copy of visits ordered by Order ascending.
// The sort is stable, so visits sharing an Order keep their fetch order.
func SortVisits(visits []domain.Visit) []domain.Visit {
	sorted := slices.Clone(visits)
	slices.SortStableFunc(sorted, func(a, b domain.Visit) int {
		return a.Order - b.Order
	})
	return sorted
}

// Resolve derives dates, statuses and the total duration for one adventure.
//
// When there are no visits, or startDate is absent or unparseable, every
// visit is undated with status past and EndDate is nil. Otherwise each visit
// starts where the previous one ended; a visit with no positive duration
// starts and ends on the same day.
func Resolve(startDate *string, visits []domain.Visit, now time.Time) Result {
	sorted := SortVisits(visits)
	res := Result{Visits: make([]domain.ResolvedVisit, 0, len(sorted))}

	var (
		cursor time.Time
		dated  bool
	)
	if startDate != nil && len(sorted) > 0 {
		cursor, dated = ParseDate(*startDate)
	}

	if !dated {
		for _, v := range sorted {
			res.DayDuration += v.Days()
			res.Visits = append(res.Visits, domain.ResolvedVisit{
				Visit:  v,
				Status: domain.StatusPast,
			})
		}
		return res
	}

	today := Today(now)
	for _, v := range sorted {
		start := formatDate(cursor)
		days := v.Days()
		res.DayDuration += days
		if days > 0 {
			cursor = cursor.AddDate(0, 0, days)
		}
		end := formatDate(cursor)

		res.Visits = append(res.Visits, domain.ResolvedVisit{
			Visit:     v,
			StartDate: start,
			EndDate:   end,
			Status:    Classify(today, start, end),
		})
	}
	res.EndDate = formatDate(cursor)
	return res
}

// Classify places the window [start, end] relative to today. All three are
// "2006-01-02" strings, which order the same way the dates do. A missing
// start counts as LowerSentinel and a missing end as UpperSentinel.
//
// A window that begins after today is future; one that has begun and ends
// today or later is current; anything else is past.
func Classify(today string, start, end *string) domain.VisitStatus {
	s, e := LowerSentinel, UpperSentinel
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}

	switch {
	case s > today:
		return domain.StatusFuture
	case e >= today:
		return domain.StatusCurrent
	default:
		return domain.StatusPast
	}
}
