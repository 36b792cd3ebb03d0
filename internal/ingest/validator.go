package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marketedgeglobal/marketintelligence/internal/config"
	"github.com/marketedgeglobal/marketintelligence/internal/models"
)

// Validate checks a single raw record against the configured value sets and
// converts it into a canonical Opportunity. Pure: the input record is not
// modified, and the same record yields the same outcome every call (only the
// assigned ID differs). On failure the returned RecordError names the field
// that caused the rejection.
func Validate(index int, raw RawRecord, cfg *config.Config) (models.Opportunity, *RecordError) {
	required := []struct {
		field string
		value string
	}{
		{"title", strings.TrimSpace(raw.Title)},
		{"country", strings.TrimSpace(raw.Country)},
		{"sector", strings.TrimSpace(raw.Sector)},
		{"opportunity_type", strings.TrimSpace(raw.OpportunityType)},
		{"description", strings.TrimSpace(raw.Description)},
	}
	for _, r := range required {
		if r.value == "" {
			return models.Opportunity{}, &RecordError{
				Kind:  MissingRequiredField,
				Index: index,
				Title: raw.Title,
				Field: r.field,
			}
		}
	}

	// Enum membership is an exact string match; "bolivia" is a rejection, not
	// a normalization candidate.
	if !cfg.ValidCountry(raw.Country) {
		return models.Opportunity{}, &RecordError{
			Kind: InvalidEnumValue, Index: index, Title: raw.Title,
			Field: "country", Value: raw.Country, Allowed: cfg.Countries,
		}
	}
	if !cfg.ValidSector(raw.Sector) {
		return models.Opportunity{}, &RecordError{
			Kind: InvalidEnumValue, Index: index, Title: raw.Title,
			Field: "sector", Value: raw.Sector, Allowed: cfg.Sectors,
		}
	}
	if !cfg.ValidOpportunityType(raw.OpportunityType) {
		return models.Opportunity{}, &RecordError{
			Kind: InvalidEnumValue, Index: index, Title: raw.Title,
			Field: "opportunity_type", Value: raw.OpportunityType, Allowed: cfg.OpportunityTypes,
		}
	}

	opp := models.Opportunity{
		ID:              uuid.New(),
		Title:           raw.Title,
		Country:         models.Country(raw.Country),
		Sector:          models.Sector(raw.Sector),
		OpportunityType: models.OpportunityType(raw.OpportunityType),
		Description:     raw.Description,
		Amount:          raw.Amount,
		Source:          raw.Source,
		URL:             raw.URL,
	}

	if raw.Deadline != "" {
		t, ok := parseTimestamp(raw.Deadline)
		if !ok {
			return models.Opportunity{}, &RecordError{
				Kind: InvalidDateFormat, Index: index, Title: raw.Title,
				Field: "deadline", Value: raw.Deadline,
			}
		}
		opp.Deadline = &t
	}
	if raw.PublishedDate != "" {
		t, ok := parseTimestamp(raw.PublishedDate)
		if !ok {
			return models.Opportunity{}, &RecordError{
				Kind: InvalidDateFormat, Index: index, Title: raw.Title,
				Field: "published_date", Value: raw.PublishedDate,
			}
		}
		opp.PublishedDate = &t
	}

	return opp, nil
}

// ValidateAll folds Validate over the whole batch, accumulating rejections
// instead of aborting: one bad record never costs the rest of the run.
// Duplicate records (same URL, or same title+source when no URL is present)
// are rejected the same way, keeping the first occurrence.
func ValidateAll(records []RawRecord, cfg *config.Config) ([]models.Opportunity, []*RecordError) {
	opportunities := make([]models.Opportunity, 0, len(records))
	var errs []*RecordError
	seen := make(map[string]struct{}, len(records))

	for i, raw := range records {
		opp, rerr := Validate(i, raw, cfg)
		if rerr != nil {
			errs = append(errs, rerr)
			continue
		}

		key := dedupeKey(raw)
		if _, dup := seen[key]; dup {
			errs = append(errs, &RecordError{Kind: DuplicateRecord, Index: i, Title: raw.Title})
			continue
		}
		seen[key] = struct{}{}

		opportunities = append(opportunities, opp)
	}

	return opportunities, errs
}

func dedupeKey(raw RawRecord) string {
	if raw.URL != "" {
		return strings.ToLower(raw.URL)
	}
	return strings.ToLower(raw.Title) + "|" + strings.ToLower(raw.Source) + "|" + raw.Deadline
}

// parseTimestamp accepts ISO 8601 timestamps and bare dates. Bare dates are
// anchored to end of day UTC, so a deadline of "2026-03-01" is still open on
// the morning of March 1st.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}

	formats := []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, raw); err == nil {
			return t.UTC(), true
		}
	}

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return toEndOfDay(t), true
	}

	return time.Time{}, false
}

// toEndOfDay sets the time to 23:59:59.999999999 UTC
func toEndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
}
