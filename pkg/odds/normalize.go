package odds

import (
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// quote is an over/under market that passed every normalization rule
type quote struct {
	category models.Category
	line     float64
	market   models.NormalizedMarket
}

// accept applies the normalization rules to one market of an allow-listed bookmaker
func accept(bookmaker string, market models.Market) (quote, bool) {
	if len(market.Outcomes) != 2 {
		return quote{}, false
	}

	over := market.Find(models.OutcomeOver)
	under := market.Find(models.OutcomeUnder)
	if over == nil || under == nil {
		return quote{}, false
	}

	// half-goal lines are never offered by the product
	if over.Point == nil || *over.Point == 0 || *over.Point == 0.5 {
		return quote{}, false
	}
	line := *over.Point

	category, ok := CategoryFor(market.Key)
	if !ok {
		return quote{}, false
	}

	accepted := false
	for _, l := range acceptedLines[category] {
		if l == line {
			accepted = true
			break
		}
	}
	if !accepted {
		return quote{}, false
	}

	return quote{
		category: category,
		line:     line,
		market: models.NormalizedMarket{
			Line:      line,
			Bookmaker: bookmaker,
			Over:      over.Price,
			Under:     under.Price,
		},
	}, true
}

// Normalize keeps allow-listed bookmakers' two-way over/under quotes on accepted lines
// and groups them by category and line. A later quote for the same line overwrites an
// earlier one. All three categories are always present.
func Normalize(event *models.EventOdds) models.NormalizedOddsBundle {
	out := models.NewNormalizedOddsBundle()
	if event == nil {
		return out
	}

	for _, bookmaker := range event.Bookmakers {
		if !isAllowedBookmaker(bookmaker.Key) {
			continue
		}
		for _, market := range bookmaker.Markets {
			q, ok := accept(bookmaker.Key, market)
			if !ok {
				continue
			}
			out.Category(q.category)[models.Line(q.line)] = q.market
		}
	}

	return out
}

// Candidates flattens the quotes Normalize would accept into best-odds candidates,
// keeping one candidate per bookmaker instead of the last one written.
func Candidates(event *models.EventOdds) []models.Candidate {
	var out []models.Candidate
	if event == nil {
		return out
	}

	for _, bookmaker := range event.Bookmakers {
		if !isAllowedBookmaker(bookmaker.Key) {
			continue
		}
		for _, market := range bookmaker.Markets {
			q, ok := accept(bookmaker.Key, market)
			if !ok {
				continue
			}
			m := q.market
			out = append(out, models.Candidate{
				Key:    CandidateKey(q.category, q.line),
				Market: &m,
			})
		}
	}

	return out
}
