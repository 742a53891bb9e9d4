package odds

import (
	"slices"
	"strconv"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// Provider market keys
const (
	MarketTotals                 = "totals"
	MarketAlternateTotals        = "alternate_totals"
	MarketAlternateTotalsCards   = "alternate_totals_cards"
	MarketAlternateTotalsCorners = "alternate_totals_corners"
	MarketBTTS                   = "btts"
)

// MarketGroup names a product market and the provider keys that feed it
type MarketGroup struct {
	Name string
	Keys []string
}

// SupportedMarketGroups lists the markets the product prices, in display order
var SupportedMarketGroups = []MarketGroup{
	{Name: "goals", Keys: []string{MarketTotals, MarketAlternateTotals}},
	{Name: "btts", Keys: []string{MarketBTTS}},
	{Name: "corners", Keys: []string{MarketAlternateTotalsCorners}},
	{Name: "cards", Keys: []string{MarketAlternateTotalsCards}},
}

var (
	allowedBookmakers = []string{"pinnacle", "bet365"}

	marketCategories = map[string]models.Category{
		MarketTotals:                 models.CategoryGoals,
		MarketAlternateTotals:        models.CategoryGoals,
		MarketAlternateTotalsCards:   models.CategoryCards,
		MarketAlternateTotalsCorners: models.CategoryCorners,
	}

	acceptedLines = map[models.Category][]float64{
		models.CategoryGoals:   {1.5, 2.5, 3.5, 4.5},
		models.CategoryCards:   {2.5, 3.5, 4.5},
		models.CategoryCorners: {8.5, 9.5, 10.5},
	}
)

// SupportedMarketKeys returns every provider key in SupportedMarketGroups
func SupportedMarketKeys() []string {
	var keys []string
	for _, group := range SupportedMarketGroups {
		keys = append(keys, group.Keys...)
	}
	return keys
}

// OfferedMarketKeys returns the supported keys present in a discovery, in group order
func OfferedMarketKeys(discovered models.DiscoveredMarkets) []string {
	var keys []string
	for _, key := range SupportedMarketKeys() {
		if _, ok := discovered[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// AcceptedLines returns the lines accepted for a category
func AcceptedLines(c models.Category) []float64 {
	return slices.Clone(acceptedLines[c])
}

// CategoryFor maps a provider market key to its category
func CategoryFor(marketKey string) (models.Category, bool) {
	c, ok := marketCategories[marketKey]
	return c, ok
}

// CandidateKey is the flat best-odds key for a category line, e.g. "goals_2.5"
func CandidateKey(c models.Category, line float64) string {
	return string(c) + "_" + strconv.FormatFloat(line, 'f', -1, 64)
}

func isAllowedBookmaker(key string) bool {
	return slices.Contains(allowedBookmakers, key)
}
