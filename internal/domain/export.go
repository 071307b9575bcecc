package domain

// ExportRow is a single row in the flat itinerary export.
// It is a denormalized view: one row per resolved visit, with adventure
// fields repeated for every visit. Adventures with no visits yield one row
// with empty visit fields.
type ExportRow struct {
	// Adventure fields, repeated for every visit on the adventure.
	AdventureID        string
	AdventureName      string
	AdventureCategory  string // display name, empty when uncategorized
	AdventureStartDate string // "2006-01-02", empty when undated
	AdventureEndDate   string // empty when undated
	AdventureDays      int

	// Visit fields: zero values when the adventure has no visits.
	VisitOrder    int
	VisitLocation string
	VisitCategory string
	VisitStart    string
	VisitEnd      string
	VisitDays     int
	VisitStatus   string
	VisitNotes    string
}
