package odds

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// ErrMalformedOdds marks a provider payload that did not have the expected shape
var ErrMalformedOdds = errors.New("malformed odds payload")

// ParseEventOdds decodes a provider payload into EventOdds.
//
// Decoding is lenient: a branch with the wrong shape (non-array markets or outcomes,
// non-object entries) is dropped and reported, the rest is kept. A root that is not an
// object, or has no bookmakers array, yields an empty event. The returned event is never
// nil; a non-nil error wraps ErrMalformedOdds.
func ParseEventOdds(data []byte) (*models.EventOdds, error) {
	event := &models.EventOdds{}

	root, ok := object(data)
	if !ok {
		return event, fmt.Errorf("%w: root is not an object", ErrMalformedOdds)
	}

	event.ID = stringField(root, "id")
	event.SportKey = stringField(root, "sport_key")
	event.HomeTeam = stringField(root, "home_team")
	event.AwayTeam = stringField(root, "away_team")
	event.CommenceTime = stringField(root, "commence_time")

	bookmakers, ok := arrayField(root, "bookmakers")
	if !ok {
		return event, fmt.Errorf("%w: bookmakers is missing or not an array", ErrMalformedOdds)
	}

	var problems []error
	event.Bookmakers = make([]models.Bookmaker, 0, len(bookmakers))

	for i, rawBookmaker := range bookmakers {
		bookmakerObj, ok := object(rawBookmaker)
		if !ok {
			problems = append(problems, fmt.Errorf("bookmakers[%d] is not an object", i))
			continue
		}

		bookmaker := models.Bookmaker{
			Key:   stringField(bookmakerObj, "key"),
			Title: stringField(bookmakerObj, "title"),
		}

		markets, ok := arrayField(bookmakerObj, "markets")
		if !ok {
			problems = append(problems, fmt.Errorf("bookmakers[%d].markets is missing or not an array", i))
			continue
		}

		bookmaker.Markets = make([]models.Market, 0, len(markets))
		for j, rawMarket := range markets {
			market, errs := parseMarket(rawMarket)
			for _, err := range errs {
				problems = append(problems, fmt.Errorf("bookmakers[%d].markets[%d]: %w", i, j, err))
			}
			if market != nil {
				bookmaker.Markets = append(bookmaker.Markets, *market)
			}
		}

		event.Bookmakers = append(event.Bookmakers, bookmaker)
	}

	if len(problems) > 0 {
		return event, fmt.Errorf("%w: %w", ErrMalformedOdds, errors.Join(problems...))
	}
	return event, nil
}

// parseMarket returns nil when the market itself is unusable. Outcomes that are not
// objects are skipped and reported.
func parseMarket(data json.RawMessage) (*models.Market, []error) {
	obj, ok := object(data)
	if !ok {
		return nil, []error{errors.New("market is not an object")}
	}

	market := &models.Market{Key: stringField(obj, "key")}

	outcomes, ok := arrayField(obj, "outcomes")
	if !ok {
		return nil, []error{errors.New("outcomes is missing or not an array")}
	}

	var problems []error
	market.Outcomes = make([]models.Outcome, 0, len(outcomes))
	for k, rawOutcome := range outcomes {
		outcomeObj, ok := object(rawOutcome)
		if !ok {
			problems = append(problems, fmt.Errorf("outcomes[%d] is not an object", k))
			continue
		}
		market.Outcomes = append(market.Outcomes, models.Outcome{
			Name:  stringField(outcomeObj, "name"),
			Point: numberField(outcomeObj, "point"),
			Price: numberField(outcomeObj, "price"),
		})
	}

	return market, problems
}

func object(data json.RawMessage) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func arrayField(obj map[string]json.RawMessage, key string) ([]json.RawMessage, bool) {
	raw, ok := obj[key]
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}

func stringField(obj map[string]json.RawMessage, key string) string {
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// numberField accepts a JSON number or a numeric string. null reads as absent.
func numberField(obj map[string]json.RawMessage, key string) *float64 {
	raw, ok := obj[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}
