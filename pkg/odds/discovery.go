package odds

import (
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// Discover lists, per market key, every bookmaker quote in the event.
// Quotes for the same key from different bookmakers accumulate. Markets without a key
// are ignored. The line comes from the Over outcome, falling back to Under.
func Discover(event *models.EventOdds) models.DiscoveredMarkets {
	result := models.DiscoveredMarkets{}
	if event == nil {
		return result
	}

	for _, bookmaker := range event.Bookmakers {
		for _, market := range bookmaker.Markets {
			if market.Key == "" {
				continue
			}

			over := market.Find(models.OutcomeOver)
			under := market.Find(models.OutcomeUnder)

			record := models.DiscoveredMarket{Bookmaker: bookmaker.Key}
			if over != nil {
				record.Line = over.Point
				record.Over = over.Price
			}
			if record.Line == nil && under != nil {
				record.Line = under.Point
			}
			if under != nil {
				record.Under = under.Price
			}

			result[market.Key] = append(result[market.Key], record)
		}
	}

	return result
}
