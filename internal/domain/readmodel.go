package domain

import "github.com/google/uuid"

// VisitStatus places a dated visit relative to today.
type VisitStatus string

const (
	StatusPast    VisitStatus = "past"
	StatusCurrent VisitStatus = "current"
	StatusFuture  VisitStatus = "future"
)

// Collection names one of the six record collections a user owns.
type Collection string

const (
	CollectionAdventures      Collection = "adventures"
	CollectionCategories      Collection = "categories"
	CollectionVisits          Collection = "visits"
	CollectionActivities      Collection = "activities"
	CollectionLodgings        Collection = "lodgings"
	CollectionTransportations Collection = "transportations"
)

// Collections lists every collection in fetch order.
var Collections = []Collection{
	CollectionAdventures,
	CollectionCategories,
	CollectionVisits,
	CollectionActivities,
	CollectionLodgings,
	CollectionTransportations,
}

// ResolvedVisit is a Visit with its derived dates and status.
// StartDate and EndDate are "2006-01-02" strings, nil when the adventure
// cannot be dated. None of these fields are ever persisted.
type ResolvedVisit struct {
	Visit     `yaml:",inline"`
	StartDate *string     `json:"start_date" yaml:"start_date"`
	EndDate   *string     `json:"end_date" yaml:"end_date"`
	Status    VisitStatus `json:"status" yaml:"status"`
	Category  *Category   `json:"category" yaml:"category"`
}

// ActivityView is an Activity with its timestamp rendered as
// "2006-01-02 15:04:05" (UTC, no zone suffix).
type ActivityView struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	AdventureID uuid.UUID `json:"adventure_id" yaml:"adventure_id"`
	Name        string    `json:"name" yaml:"name"`
	Location    string    `json:"location" yaml:"location"`
	Cost        *float64  `json:"cost" yaml:"cost"`
	At          *string   `json:"at" yaml:"at"`
}

// LodgingView is a Lodging with rendered timestamps.
type LodgingView struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	AdventureID uuid.UUID `json:"adventure_id" yaml:"adventure_id"`
	Location    string    `json:"location" yaml:"location"`
	Company     string    `json:"company" yaml:"company"`
	Reservation string    `json:"reservation" yaml:"reservation"`
	Cost        *float64  `json:"cost" yaml:"cost"`
	FromAt      *string   `json:"from_at" yaml:"from_at"`
	ToAt        *string   `json:"to_at" yaml:"to_at"`
}

// TransportationView is a Transportation with rendered timestamps.
type TransportationView struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	AdventureID uuid.UUID `json:"adventure_id" yaml:"adventure_id"`
	Type        string    `json:"type" yaml:"type"`
	Company     string    `json:"company" yaml:"company"`
	Reservation string    `json:"reservation" yaml:"reservation"`
	Cost        *float64  `json:"cost" yaml:"cost"`
	From        string    `json:"from" yaml:"from"`
	FromAt      *string   `json:"from_at" yaml:"from_at"`
	To          string    `json:"to" yaml:"to"`
	ToAt        *string   `json:"to_at" yaml:"to_at"`
}

// ResolvedAdventure is an Adventure merged with its derived fields, its
// category and its grouped sub-records: the self-contained view handed to
// the presentation layer.
type ResolvedAdventure struct {
	Adventure       `yaml:",inline"`
	EndDate         *string              `json:"end_date" yaml:"end_date"`
	DayDuration     int                  `json:"day_duration" yaml:"day_duration"`
	Category        *Category            `json:"category" yaml:"category"`
	Visits          []ResolvedVisit      `json:"visits" yaml:"visits"`
	Activities      []ActivityView       `json:"activities" yaml:"activities"`
	Lodgings        []LodgingView        `json:"lodgings" yaml:"lodgings"`
	Transportations []TransportationView `json:"transportations" yaml:"transportations"`
}

// ReadModel is everything the presentation layer renders for one user.
type ReadModel struct {
	Adventures []ResolvedAdventure `json:"adventures" yaml:"adventures"`
	Categories []Category          `json:"categories" yaml:"categories"`
}
