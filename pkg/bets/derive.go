// Package bets derives golden, value and bet-builder selections from model predictions.
package bets

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

const (
	// MinOdds is the shortest price a selection may carry
	MinOdds = 1.6
	// TopN is how many golden and value selections are kept
	TopN = 3
	// BuilderGoldenLegs and BuilderValueLegs size the bet builder
	BuilderGoldenLegs = 2
	BuilderValueLegs  = 1
)

var (
	// ValueEdge is the minimum edge for a value bet
	ValueEdge = decimal.NewFromFloat(0.05)
	// RealismFactor discounts combined odds for correlated legs
	RealismFactor = decimal.NewFromFloat(0.75)
)

// Golden is the highest-probability market of one fixture
type Golden struct {
	FixtureID   int64
	HomeTeam    string
	AwayTeam    string
	Market      string
	Probability float64
}

// Derivation holds every selection derived in one run
type Derivation struct {
	Golden     []models.Selection
	Value      []models.Selection
	BetBuilder models.BetBuilder
}

// ImpliedProbability returns 1/odds, or 0 for non-positive odds
func ImpliedProbability(odds decimal.Decimal) decimal.Decimal {
	if !odds.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Div(odds)
}

// Edge returns probability minus the implied probability of odds
func Edge(probability float64, odds decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(probability).Sub(ImpliedProbability(odds))
}

// GoldenPerFixture picks each fixture's most likely market. On an exact tie the market
// listed first wins. Fixtures without probabilities are skipped.
func GoldenPerFixture(rows []models.PredictionRow) []Golden {
	goldens := make([]Golden, 0, len(rows))

	for _, row := range rows {
		if len(row.Probabilities) == 0 {
			continue
		}

		best := row.Probabilities[0]
		for _, mp := range row.Probabilities[1:] {
			if mp.Probability > best.Probability {
				best = mp
			}
		}

		goldens = append(goldens, Golden{
			FixtureID:   row.FixtureID,
			HomeTeam:    row.HomeTeam,
			AwayTeam:    row.AwayTeam,
			Market:      best.Market,
			Probability: best.Probability,
		})
	}

	return goldens
}

// PickTopGolden keeps goldens priced at MinOdds or longer and returns the TopN most likely
func PickTopGolden(goldens []Golden, odds models.OddsByFixture) []models.Selection {
	var picks []models.Selection

	for _, g := range goldens {
		price := odds.Odds(g.FixtureID, g.Market)
		if price < MinOdds {
			continue
		}
		picks = append(picks, models.Selection{
			ID:          uuid.New(),
			Kind:        models.SelectionGolden,
			FixtureID:   g.FixtureID,
			HomeTeam:    g.HomeTeam,
			AwayTeam:    g.AwayTeam,
			Market:      g.Market,
			Probability: g.Probability,
			Odds:        decimal.NewFromFloat(price),
		})
	}

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].Probability > picks[j].Probability
	})

	if len(picks) > TopN {
		picks = picks[:TopN]
	}
	return picks
}

// ValueBets returns the TopN fixture markets whose edge over the quoted price is at
// least ValueEdge, highest edge first. Unpriced markets and prices under MinOdds are skipped.
func ValueBets(rows []models.PredictionRow, odds models.OddsByFixture) []models.Selection {
	var values []models.Selection

	for _, row := range rows {
		for _, mp := range row.Probabilities {
			price := odds.Odds(row.FixtureID, mp.Market)
			if price < MinOdds {
				continue
			}

			priceDec := decimal.NewFromFloat(price)
			edge := Edge(mp.Probability, priceDec)
			if edge.LessThan(ValueEdge) {
				continue
			}

			values = append(values, models.Selection{
				ID:          uuid.New(),
				Kind:        models.SelectionValue,
				FixtureID:   row.FixtureID,
				HomeTeam:    row.HomeTeam,
				AwayTeam:    row.AwayTeam,
				Market:      mp.Market,
				Probability: mp.Probability,
				Odds:        priceDec,
				Edge:        &edge,
			})
		}
	}

	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Edge.GreaterThan(*values[j].Edge)
	})

	if len(values) > TopN {
		values = values[:TopN]
	}
	return values
}

// BuildBetBuilder combines the first golden legs with the first value leg and discounts
// the product of their odds by RealismFactor, rounded to two decimals.
func BuildBetBuilder(golden, value []models.Selection) models.BetBuilder {
	legs := make([]models.Selection, 0, BuilderGoldenLegs+BuilderValueLegs)
	legs = append(legs, golden[:min(BuilderGoldenLegs, len(golden))]...)
	legs = append(legs, value[:min(BuilderValueLegs, len(value))]...)

	combined := decimal.NewFromInt(1)
	for _, leg := range legs {
		combined = combined.Mul(leg.Odds)
	}

	return models.BetBuilder{
		Legs:         legs,
		CombinedOdds: combined.Mul(RealismFactor).Round(2),
	}
}

// Derive runs every derivation over one batch of predictions
func Derive(rows []models.PredictionRow, odds models.OddsByFixture) Derivation {
	golden := PickTopGolden(GoldenPerFixture(rows), odds)
	value := ValueBets(rows, odds)

	return Derivation{
		Golden:     golden,
		Value:      value,
		BetBuilder: BuildBetBuilder(golden, value),
	}
}
