package classify

import (
	"strings"
	"time"

	"github.com/marketedgeglobal/marketintelligence/internal/config"
	"github.com/marketedgeglobal/marketintelligence/internal/ingest"
	"github.com/marketedgeglobal/marketintelligence/internal/models"
)

// signalRule maps keyword evidence onto a category. Strong terms count double
// when picking the best-matching rule.
type signalRule struct {
	category models.Category
	strong   []string
	medium   []string
}

// signalRules are matched against title + description (lowercased, HTML
// stripped). Order matters only for ties: the first rule with the best score
// wins, so the earlier rules act as tie-breakers.
var signalRules = []signalRule{
	{
		category: "Funding",
		strong:   []string{"grant", "funding", "call for proposals", "fund", "financial support", "award"},
		medium:   []string{"open call", "call for expressions of interest", "apply now", "funding window"},
	},
	{
		category: "Procurement",
		strong:   []string{"tender", "procurement", "rfp", "request for proposal", "bid", "invitation to bid"},
		medium:   []string{"tender notice", "solicitation", "vendor", "contract award"},
	},
	{
		category: "Humanitarian",
		strong:   []string{"humanitarian", "emergency", "crisis", "appeal", "response plan", "relief"},
		medium:   []string{"flash appeal", "urgent", "displacement", "outbreak"},
	},
	{
		category: "Development Program",
		strong:   []string{"program launch", "development program", "initiative", "capacity building", "pilot"},
		medium:   []string{"partnership", "implementation", "project start", "technical assistance"},
	},
	{
		category: "Policy Update",
		strong:   []string{"policy", "regulation", "strategy", "framework", "legislation"},
		medium:   []string{"approved", "adopted", "policy shift", "guidance"},
	},
}

// typeCategories is the fallback mapping used when no keyword rule matches.
var typeCategories = map[models.OpportunityType]models.Category{
	"Grants":               "Funding",
	"Subsidies":            "Funding",
	"Tenders":              "Procurement",
	"Development programs": "Development Program",
}

var urgencyTerms = []string{
	"urgent", "closing soon", "deadline approaching", "apply now",
	"last call", "final call", "immediate",
}

var largeAmountTerms = []string{"million", "billion", "millones"}

// Classify assigns the derived category, priority score and priority band to
// an opportunity and returns the updated copy. Pure: no I/O, no randomness,
// and the clock comes in as an explicit argument, so the same opportunity and
// the same now always produce the same result.
func Classify(opp models.Opportunity, now time.Time, cfg *config.Config) models.Opportunity {
	text := matchText(opp)

	category, strength := classifySignal(text, cfg)
	if strength == 0 {
		category = fallbackCategory(opp.OpportunityType, cfg)
		strength = 1
	}

	score := deadlineScore(opp.Deadline, now, cfg.Report.WindowDays) +
		strength +
		amountScore(opp.Amount) +
		urgencyScore(text) +
		completenessScore(opp)

	opp.Category = category
	opp.PriorityScore = clampScore(score)
	opp.PriorityBand = bandFor(opp.PriorityScore)
	return opp
}

func matchText(opp models.Opportunity) string {
	return strings.ToLower(opp.Title + " " + ingest.HTMLToText(opp.Description))
}

// classifySignal picks the category whose keyword evidence scores highest and
// translates the match quality into a strength of 1..3. A zero strength means
// no rule matched at all.
func classifySignal(text string, cfg *config.Config) (models.Category, int) {
	var bestCategory models.Category
	bestScore := 0
	bestStrength := 0

	for _, rule := range signalRules {
		if !cfg.ValidCategory(string(rule.category)) {
			continue
		}

		strongMatches := countMatches(text, rule.strong)
		mediumMatches := countMatches(text, rule.medium)
		score := strongMatches*2 + mediumMatches
		if score <= bestScore {
			continue
		}

		bestScore = score
		bestCategory = rule.category
		switch {
		case strongMatches >= 2:
			bestStrength = 3
		case strongMatches >= 1 || mediumMatches >= 2:
			bestStrength = 2
		default:
			bestStrength = 1
		}
	}

	return bestCategory, bestStrength
}

func fallbackCategory(t models.OpportunityType, cfg *config.Config) models.Category {
	if category, ok := typeCategories[t]; ok && cfg.ValidCategory(string(category)) {
		return category
	}
	return models.Category(cfg.DefaultCategory)
}

// deadlineScore rewards proximity of a future deadline: a nearer deadline
// never scores lower than a farther one. Past or absent deadlines contribute
// nothing.
func deadlineScore(deadline *time.Time, now time.Time, windowDays int) int {
	if deadline == nil || !deadline.After(now) {
		return 0
	}
	remaining := deadline.Sub(now)
	switch {
	case remaining <= 7*24*time.Hour:
		return 3
	case remaining <= 14*24*time.Hour:
		return 2
	case remaining <= time.Duration(windowDays)*24*time.Hour:
		return 1
	}
	return 0
}

func amountScore(amount string) int {
	if amount == "" {
		return 0
	}
	lower := strings.ToLower(amount)
	for _, term := range largeAmountTerms {
		if strings.Contains(lower, term) {
			return 2
		}
	}
	return 1
}

func urgencyScore(text string) int {
	if countMatches(text, urgencyTerms) > 0 {
		return 1
	}
	return 0
}

func completenessScore(opp models.Opportunity) int {
	if opp.URL != "" && opp.Source != "" {
		return 1
	}
	return 0
}

func countMatches(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			n++
		}
	}
	return n
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func bandFor(score int) models.PriorityBand {
	if score >= 8 {
		return models.BandHigh
	}
	if score >= 5 {
		return models.BandMedium
	}
	return models.BandLow
}
