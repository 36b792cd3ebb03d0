package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// RawRecord is a single untrusted opportunity record as it arrives from the
// input document. All fields are strings; parsing and membership checks happen
// in Validate.
type RawRecord struct {
	Title           string
	Country         string
	Sector          string
	OpportunityType string
	Description     string
	Amount          string
	Deadline        string
	Source          string
	URL             string
	PublishedDate   string
}

// recordListKeys are the top-level keys checked, in order, when locating the
// record sequence inside an object-shaped payload. "opportunities" is the
// canonical key; the rest cover webhook-relayed RSS payloads.
var recordListKeys = []string{"opportunities", "items", "rss_items", "entries", "records", "data"}

// ExtractRecords locates and coerces the raw record sequence in a JSON
// document. Supported shapes: an object with one of recordListKeys, a GitHub
// repository_dispatch event (records nested under client_payload), a bare
// array of records, or a single record object. Anything else is
// ErrMalformedDocument.
func ExtractRecords(doc []byte) ([]RawRecord, error) {
	var payload interface{}
	if err := json.Unmarshal(doc, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	if obj, ok := payload.(map[string]interface{}); ok {
		if inner, ok := obj["client_payload"]; ok {
			payload = inner
		}
	}

	entries, err := locateEntries(payload)
	if err != nil {
		return nil, err
	}

	records := make([]RawRecord, 0, len(entries))
	for _, entry := range entries {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			// Non-object entries carry nothing usable; skip rather than abort.
			continue
		}
		records = append(records, coerceRecord(obj))
	}
	return records, nil
}

func locateEntries(payload interface{}) ([]interface{}, error) {
	switch v := payload.(type) {
	case []interface{}:
		return v, nil
	case map[string]interface{}:
		for _, key := range recordListKeys {
			if list, ok := v[key].([]interface{}); ok {
				return list, nil
			}
		}
		if _, ok := v["title"]; ok {
			return []interface{}{v}, nil
		}
		return nil, fmt.Errorf("%w: no record list under any of %v", ErrMalformedDocument, recordListKeys)
	}
	return nil, fmt.Errorf("%w: expected a JSON object or array", ErrMalformedDocument)
}

// coerceRecord maps a loose payload object onto a RawRecord, resolving the
// alias keys used by RSS-relay producers (link/url, pubDate/published_date,
// summary/description, feed_source/source).
func coerceRecord(obj map[string]interface{}) RawRecord {
	return RawRecord{
		Title:           cleanText(firstString(obj, "title")),
		Country:         cleanText(firstString(obj, "country")),
		Sector:          cleanText(firstString(obj, "sector")),
		OpportunityType: cleanText(firstString(obj, "opportunity_type", "type")),
		Description:     firstString(obj, "description", "summary", "raw_content", "content"),
		Amount:          cleanText(firstString(obj, "amount")),
		Deadline:        cleanText(firstString(obj, "deadline")),
		Source:          cleanText(firstString(obj, "source", "feed_source")),
		URL:             cleanText(firstString(obj, "url", "link")),
		PublishedDate:   cleanText(firstString(obj, "published_date", "pubDate", "published", "published_at", "timestamp")),
	}
}

func firstString(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
	}
	return ""
}
