package report

import (
	"time"

	"github.com/marketedgeglobal/marketintelligence/internal/classify"
	"github.com/marketedgeglobal/marketintelligence/internal/config"
	"github.com/marketedgeglobal/marketintelligence/internal/ingest"
	"github.com/marketedgeglobal/marketintelligence/internal/models"
)

// Report is the fully assembled output of one generation run: the validated,
// classified opportunity sequence plus grouped views over it. Constructed once
// by Build and read-only afterwards; accessors return internal slices and
// callers must not modify them.
type Report struct {
	title         string
	generatedAt   time.Time
	opportunities []models.Opportunity

	countries []models.Country
	sectors   []models.Sector
	types     []models.OpportunityType

	byCountry map[models.Country][]models.Opportunity
	bySector  map[models.Sector][]models.Opportunity
	byType    map[models.OpportunityType][]models.Opportunity
}

// Build partitions an already validated and classified sequence into the
// by-country, by-sector and by-type views. The partition is stable: each
// bucket preserves the input order. Every configured enum value gets a bucket,
// so downstream rendering shows empty sections instead of dropping them.
func Build(opps []models.Opportunity, generatedAt time.Time, cfg *config.Config) *Report {
	r := &Report{
		title:         cfg.Report.Title,
		generatedAt:   generatedAt,
		opportunities: opps,
		byCountry:     make(map[models.Country][]models.Opportunity, len(cfg.Countries)),
		bySector:      make(map[models.Sector][]models.Opportunity, len(cfg.Sectors)),
		byType:        make(map[models.OpportunityType][]models.Opportunity, len(cfg.OpportunityTypes)),
	}

	for _, c := range cfg.Countries {
		r.countries = append(r.countries, models.Country(c))
		r.byCountry[models.Country(c)] = []models.Opportunity{}
	}
	for _, s := range cfg.Sectors {
		r.sectors = append(r.sectors, models.Sector(s))
		r.bySector[models.Sector(s)] = []models.Opportunity{}
	}
	for _, t := range cfg.OpportunityTypes {
		r.types = append(r.types, models.OpportunityType(t))
		r.byType[models.OpportunityType(t)] = []models.Opportunity{}
	}

	for _, opp := range opps {
		r.byCountry[opp.Country] = append(r.byCountry[opp.Country], opp)
		r.bySector[opp.Sector] = append(r.bySector[opp.Sector], opp)
		r.byType[opp.OpportunityType] = append(r.byType[opp.OpportunityType], opp)
	}

	return r
}

func (r *Report) Title() string { return r.title }

func (r *Report) GeneratedAt() time.Time { return r.generatedAt }

// Opportunities returns the full sequence in input order.
func (r *Report) Opportunities() []models.Opportunity { return r.opportunities }

func (r *Report) TotalCount() int { return len(r.opportunities) }

// Countries returns the configured country set in configuration order.
func (r *Report) Countries() []models.Country { return r.countries }

func (r *Report) Sectors() []models.Sector { return r.sectors }

func (r *Report) Types() []models.OpportunityType { return r.types }

// ByCountry returns the country bucket; empty (never nil) for configured
// countries without opportunities.
func (r *Report) ByCountry(c models.Country) []models.Opportunity { return r.byCountry[c] }

func (r *Report) BySector(s models.Sector) []models.Opportunity { return r.bySector[s] }

func (r *Report) ByType(t models.OpportunityType) []models.Opportunity { return r.byType[t] }

// Bands returns the priority bands in rendering order.
func (r *Report) Bands() []models.PriorityBand {
	return []models.PriorityBand{models.BandHigh, models.BandMedium, models.BandLow}
}

// ByBand filters the sequence by priority band, preserving input order.
func (r *Report) ByBand(band models.PriorityBand) []models.Opportunity {
	out := []models.Opportunity{}
	for _, opp := range r.opportunities {
		if opp.PriorityBand == band {
			out = append(out, opp)
		}
	}
	return out
}

// Generate runs the whole pipeline over an input JSON document: extract raw
// records, validate, classify, aggregate. Per-record rejections come back in
// the error list alongside a still-renderable report; only document-level
// structural problems (ingest.ErrMalformedDocument) fail the run.
func Generate(doc []byte, now time.Time, cfg *config.Config) (*Report, []*ingest.RecordError, error) {
	records, err := ingest.ExtractRecords(doc)
	if err != nil {
		return nil, nil, err
	}

	opps, recordErrs := ingest.ValidateAll(records, cfg)
	for i := range opps {
		opps[i] = classify.Classify(opps[i], now, cfg)
	}

	return Build(opps, now, cfg), recordErrs, nil
}
