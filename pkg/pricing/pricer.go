// Package pricing strips the bookmaker margin from two-way over/under quotes.
package pricing

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
	"github.com/dannythehat/footy-oracle-v2-sub003/pkg/bets"
)

var one = decimal.NewFromInt(1)

// Pricer derives fair prices from the best quote per line
type Pricer struct {
	logger zerolog.Logger
}

// NewPricer creates a new pricer
func NewPricer(logger zerolog.Logger) *Pricer {
	return &Pricer{
		logger: logger.With().Str("component", "pricer").Logger(),
	}
}

// Price removes the margin from one quote. The overround is shared out in proportion
// to each side's implied probability, so fair odds are price * booksum.
func (p *Pricer) Price(market models.NormalizedMarket) (*models.FairPrice, error) {
	if market.Over == nil || market.Under == nil {
		return nil, fmt.Errorf("quote from %s is missing a side", market.Bookmaker)
	}

	over := decimal.NewFromFloat(*market.Over)
	under := decimal.NewFromFloat(*market.Under)
	if over.LessThanOrEqual(one) || under.LessThanOrEqual(one) {
		return nil, fmt.Errorf("invalid price: over %s under %s", over, under)
	}

	booksum := bets.ImpliedProbability(over).Add(bets.ImpliedProbability(under))

	return &models.FairPrice{
		Bookmaker: market.Bookmaker,
		Margin:    booksum.Sub(one).Round(4),
		Over:      over.Mul(booksum).Round(3),
		Under:     under.Mul(booksum).Round(3),
	}, nil
}

// PriceAll prices every quote, skipping the ones that cannot be priced
func (p *Pricer) PriceAll(best map[string]models.NormalizedMarket) map[string]models.FairPrice {
	keys := make([]string, 0, len(best))
	for key := range best {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fair := make(map[string]models.FairPrice, len(best))
	for _, key := range keys {
		price, err := p.Price(best[key])
		if err != nil {
			p.logger.Warn().
				Err(err).
				Str("key", key).
				Msg("failed to price quote")
			continue
		}
		fair[key] = *price
	}

	p.logger.Debug().
		Int("input_count", len(best)).
		Int("output_count", len(fair)).
		Msg("priced best quotes")

	return fair
}
