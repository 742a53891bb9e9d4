package odds

import (
	"slices"
	"sort"
	"strings"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// MaxPlausibleOdds is the largest price kept by SelectBest; anything above is noise
const MaxPlausibleOdds = 15.0

// bookmakerPriority lists preferred bookmakers first
var bookmakerPriority = []string{"bet365", "pinnacle"}

// SelectBest picks one market per key. Candidates from bookmakers outside the priority
// list, or with a missing, zero or implausible price on either side, are dropped.
// Among the rest, the higher-priority bookmaker wins regardless of order.
func SelectBest(candidates []models.Candidate) map[string]models.NormalizedMarket {
	result := make(map[string]models.NormalizedMarket)

	for _, c := range candidates {
		if c.Market == nil {
			continue
		}

		rank := priorityRank(c.Market.Bookmaker)
		if rank < 0 {
			continue
		}

		if !plausible(c.Market.Over) || !plausible(c.Market.Under) {
			continue
		}

		current, ok := result[c.Key]
		if !ok || rank < priorityRank(current.Bookmaker) {
			result[c.Key] = *c.Market
		}
	}

	return result
}

// CandidatesFromMap turns a flat key->market mapping into candidates ordered by key
func CandidatesFromMap(markets map[string]*models.NormalizedMarket) []models.Candidate {
	keys := make([]string, 0, len(markets))
	for k := range markets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]models.Candidate, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.Candidate{Key: k, Market: markets[k]})
	}
	return out
}

func priorityRank(bookmaker string) int {
	return slices.Index(bookmakerPriority, strings.ToLower(bookmaker))
}

func plausible(price *float64) bool {
	return price != nil && *price != 0 && *price <= MaxPlausibleOdds
}
