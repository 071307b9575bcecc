// export.go implements GET /api/journal/export.
// Returns the resolved itinerary as a flat table, one row per visit.
// Supports ?format=csv (CSV) or ?format=json (default).

package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"adventure_id", "adventure_name", "adventure_category",
	"adventure_start_date", "adventure_end_date", "adventure_days",
	"visit_order", "visit_location", "visit_category",
	"visit_start_date", "visit_end_date", "visit_days", "visit_status",
	"visit_notes",
}

// ExportRow is the JSON shape of one export row.
type ExportRow struct {
	AdventureID        string `json:"adventure_id"`
	AdventureName      string `json:"adventure_name"`
	AdventureCategory  string `json:"adventure_category,omitempty"`
	AdventureStartDate string `json:"adventure_start_date,omitempty"`
	AdventureEndDate   string `json:"adventure_end_date,omitempty"`
	AdventureDays      int    `json:"adventure_days"`
	VisitOrder         *int   `json:"visit_order,omitempty"`
	VisitLocation      string `json:"visit_location,omitempty"`
	VisitCategory      string `json:"visit_category,omitempty"`
	VisitStartDate     string `json:"visit_start_date,omitempty"`
	VisitEndDate       string `json:"visit_end_date,omitempty"`
	VisitDays          *int   `json:"visit_days,omitempty"`
	VisitStatus        string `json:"visit_status,omitempty"`
	VisitNotes         string `json:"visit_notes,omitempty"`
}

// GetExport implements GET /api/journal/export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		badRequest(w, "invalid format for parameter format: "+err.Error())
		return
	}

	wantCSV := false
	if format != nil {
		switch *format {
		case "csv":
			wantCSV = true
		case "json":
		default:
			badRequest(w, "format must be csv or json")
			return
		}
	}

	rows := s.deps.Export.Export(r.Context(), user.ID)
	if wantCSV {
		writeCSV(w, rows)
		return
	}

	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV streams rows as an attachment.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()
}

// hasVisit reports whether the row carries a visit; adventures without
// visits export one row with empty visit columns.
func hasVisit(r domain.ExportRow) bool {
	return r.VisitLocation != "" || r.VisitStatus != ""
}

// domainRowToResponse maps a domain.ExportRow to its JSON shape.
// Visit numbers are omitted, not zeroed, on visit-less rows.
func domainRowToResponse(r domain.ExportRow) ExportRow {
	out := ExportRow{
		AdventureID:        r.AdventureID,
		AdventureName:      r.AdventureName,
		AdventureCategory:  r.AdventureCategory,
		AdventureStartDate: r.AdventureStartDate,
		AdventureEndDate:   r.AdventureEndDate,
		AdventureDays:      r.AdventureDays,
		VisitLocation:      r.VisitLocation,
		VisitCategory:      r.VisitCategory,
		VisitStartDate:     r.VisitStart,
		VisitEndDate:       r.VisitEnd,
		VisitStatus:        r.VisitStatus,
		VisitNotes:         r.VisitNotes,
	}
	if hasVisit(r) {
		order, days := r.VisitOrder, r.VisitDays
		out.VisitOrder = &order
		out.VisitDays = &days
	}
	return out
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Visit-less rows leave every visit column empty.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	order, days := "", ""
	if hasVisit(r) {
		order = strconv.Itoa(r.VisitOrder)
		days = strconv.Itoa(r.VisitDays)
	}
	return []string{
		r.AdventureID,
		r.AdventureName,
		r.AdventureCategory,
		r.AdventureStartDate,
		r.AdventureEndDate,
		strconv.Itoa(r.AdventureDays),
		order,
		r.VisitLocation,
		r.VisitCategory,
		r.VisitStart,
		r.VisitEnd,
		days,
		r.VisitStatus,
		r.VisitNotes,
	}
}
