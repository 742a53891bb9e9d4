package odds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

func totalsMarket(key string, overPoint, overPrice, underPrice float64) models.Market {
	return models.Market{Key: key, Outcomes: []models.Outcome{
		{Name: "Over", Point: ptr(overPoint), Price: ptr(overPrice)},
		{Name: "Under", Point: ptr(overPoint), Price: ptr(underPrice)},
	}}
}

func eventWith(bookmaker string, markets ...models.Market) *models.EventOdds {
	return &models.EventOdds{Bookmakers: []models.Bookmaker{{Key: bookmaker, Markets: markets}}}
}

// TestNormalize_SingleTotals tests the basic goals normalization
func TestNormalize_SingleTotals(t *testing.T) {
	event, err := ParseEventOdds([]byte(pinnacleTotalsPayload))
	require.NoError(t, err)

	bundle := Normalize(event)

	require.Len(t, bundle.Goals, 1)
	goal := bundle.Goals[2.5]
	assert.Equal(t, "pinnacle", goal.Bookmaker)
	assert.Equal(t, 1.9, *goal.Over)
	assert.Equal(t, 1.95, *goal.Under)
	assert.Empty(t, bundle.Cards)
	assert.Empty(t, bundle.Corners)
}

// TestNormalize_AlwaysReturnsAllCategories tests the output shape on empty input
func TestNormalize_AlwaysReturnsAllCategories(t *testing.T) {
	for _, event := range []*models.EventOdds{nil, {}, {Bookmakers: []models.Bookmaker{{Key: "pinnacle"}}}} {
		bundle := Normalize(event)

		assert.NotNil(t, bundle.Goals)
		assert.NotNil(t, bundle.Cards)
		assert.NotNil(t, bundle.Corners)
		assert.Zero(t, bundle.Size())
	}
}

// TestNormalize_MixedPayload tests allow-listing, categories and last-write-wins
func TestNormalize_MixedPayload(t *testing.T) {
	event, err := ParseEventOdds([]byte(mixedPayload))
	require.NoError(t, err)

	bundle := Normalize(event)

	// bet365 is processed after pinnacle and overwrites goals 2.5
	require.Len(t, bundle.Goals, 1)
	assert.Equal(t, "bet365", bundle.Goals[2.5].Bookmaker)
	assert.Equal(t, 1.85, *bundle.Goals[2.5].Over)

	require.Len(t, bundle.Cards, 1)
	assert.Equal(t, "pinnacle", bundle.Cards[3.5].Bookmaker)

	// corners 11.5 is outside the accepted set
	require.Len(t, bundle.Corners, 1)
	assert.Contains(t, bundle.Corners, models.Line(9.5))

	// williamhill is not allow-listed
	_, ok := bundle.Goals[3.5]
	assert.False(t, ok)
}

// TestNormalize_RejectsNonTwoWayMarkets tests the exactly-two-outcomes rule
func TestNormalize_RejectsNonTwoWayMarkets(t *testing.T) {
	threeWay := models.Market{Key: "totals", Outcomes: []models.Outcome{
		{Name: "Over", Point: ptr(2.5), Price: ptr(1.9)},
		{Name: "Under", Point: ptr(2.5), Price: ptr(1.9)},
		{Name: "Exactly", Point: ptr(2.5), Price: ptr(6.0)},
	}}
	oneWay := models.Market{Key: "totals", Outcomes: []models.Outcome{
		{Name: "Over", Point: ptr(1.5), Price: ptr(1.3)},
	}}
	noUnder := models.Market{Key: "totals", Outcomes: []models.Outcome{
		{Name: "Over", Point: ptr(3.5), Price: ptr(2.9)},
		{Name: "over", Point: ptr(3.5), Price: ptr(1.4)},
	}}

	bundle := Normalize(eventWith("pinnacle", threeWay, oneWay, noUnder))

	assert.Zero(t, bundle.Size())
}

// TestNormalize_RejectsHalfAndZeroLines tests the explicit 0.5 and falsy line exclusions
func TestNormalize_RejectsHalfAndZeroLines(t *testing.T) {
	missingPoint := models.Market{Key: "totals", Outcomes: []models.Outcome{
		{Name: "Over", Price: ptr(1.9)},
		{Name: "Under", Point: ptr(2.5), Price: ptr(1.9)},
	}}

	bundle := Normalize(eventWith("bet365",
		totalsMarket("totals", 0.5, 1.05, 9.0),
		totalsMarket("totals", 0, 1.5, 2.5),
		missingPoint,
	))

	assert.Zero(t, bundle.Size())
}

// TestNormalize_OnlyAcceptedLines tests that every returned line is in its category's set
func TestNormalize_OnlyAcceptedLines(t *testing.T) {
	var markets []models.Market
	for _, line := range []float64{0.5, 1.5, 2.5, 3.5, 4.5, 5.5, 7.5, 8.5, 9.5, 10.5, 11.5} {
		markets = append(markets,
			totalsMarket("alternate_totals", line, 1.9, 1.9),
			totalsMarket("alternate_totals_cards", line, 1.9, 1.9),
			totalsMarket("alternate_totals_corners", line, 1.9, 1.9),
			totalsMarket("alternate_totals_fouls", line, 1.9, 1.9),
		)
	}

	bundle := Normalize(eventWith("pinnacle", markets...))

	for _, c := range []models.Category{models.CategoryGoals, models.CategoryCards, models.CategoryCorners} {
		accepted := AcceptedLines(c)
		assert.Len(t, bundle.Category(c), len(accepted), "category %s", c)
		for line := range bundle.Category(c) {
			assert.Contains(t, accepted, float64(line), "category %s", c)
		}
	}
}

// TestCandidates_KeepsEveryBookmaker tests flattening keeps one candidate per bookmaker
func TestCandidates_KeepsEveryBookmaker(t *testing.T) {
	event, err := ParseEventOdds([]byte(mixedPayload))
	require.NoError(t, err)

	candidates := Candidates(event)

	keys := make([]string, 0, len(candidates))
	for _, c := range candidates {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"goals_2.5", "cards_3.5", "goals_2.5", "corners_9.5"}, keys)
	assert.Equal(t, "pinnacle", candidates[0].Market.Bookmaker)
	assert.Equal(t, "bet365", candidates[2].Market.Bookmaker)
}
