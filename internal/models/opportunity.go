package models

import (
	"time"

	"github.com/google/uuid"
)

// Country, Sector, OpportunityType and Category are closed value sets. Values
// are only ever produced at the ingestion boundary, after a membership check
// against the configured sets; inside the pipeline they are trusted.
type Country string

type Sector string

type OpportunityType string

type Category string

// PriorityBand is derived from the priority score for report sectioning.
type PriorityBand string

const (
	BandHigh   PriorityBand = "HIGH PRIORITY"
	BandMedium PriorityBand = "MEDIUM PRIORITY"
	BandLow    PriorityBand = "LOW PRIORITY"
)

// Opportunity is a single validated funding/procurement record. Immutable once
// it enters a report; the classifier returns an updated copy rather than
// mutating in place.
type Opportunity struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Country         Country         `json:"country"`
	Sector          Sector          `json:"sector"`
	OpportunityType OpportunityType `json:"opportunity_type"`
	Description     string          `json:"description"`
	Amount          string          `json:"amount,omitempty"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
	Source          string          `json:"source,omitempty"`
	URL             string          `json:"url,omitempty"`
	PublishedDate   *time.Time      `json:"published_date,omitempty"`

	// Derived fields, assigned by the classifier.
	Category      Category     `json:"category"`
	PriorityScore int          `json:"priority_score"`
	PriorityBand  PriorityBand `json:"priority_band"`
}
