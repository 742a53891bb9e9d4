package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MarketProbability is the predicted probability for one market
type MarketProbability struct {
	Market      string
	Probability float64
}

// Probabilities keeps market probabilities in the order the model emitted them
type Probabilities []MarketProbability

// Get returns the probability for market
func (p Probabilities) Get(market string) (float64, bool) {
	for _, mp := range p {
		if mp.Market == market {
			return mp.Probability, true
		}
	}
	return 0, false
}

// UnmarshalJSON decodes a JSON object preserving key order
func (p *Probabilities) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read probabilities: %w", err)
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("probabilities must be an object, got %v", tok)
	}

	out := Probabilities{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read probability key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected probability key %v", keyTok)
		}

		var value float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("invalid probability for %s: %w", key, err)
		}
		out = append(out, MarketProbability{Market: key, Probability: value})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close probabilities: %w", err)
	}

	*p = out
	return nil
}

// MarshalJSON encodes probabilities as an ordered JSON object
func (p Probabilities) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, mp := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(mp.Market)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(mp.Probability)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// PredictionRow is the model output for one fixture
type PredictionRow struct {
	FixtureID     int64         `json:"fixtureId"`
	HomeTeam      string        `json:"homeTeam"`
	AwayTeam      string        `json:"awayTeam"`
	Probabilities Probabilities `json:"probabilities"`
}

// PredictionBatch is the predictions file written by the ML pipeline
type PredictionBatch struct {
	Success     bool            `json:"success"`
	Total       int             `json:"total"`
	Predictions []PredictionRow `json:"predictions"`
}

// OddsByFixture maps fixture id to market to decimal odds
type OddsByFixture map[int64]map[string]float64

// Odds returns the quoted odds, or 0 when unknown
func (o OddsByFixture) Odds(fixtureID int64, market string) float64 {
	markets, ok := o[fixtureID]
	if !ok {
		return 0
	}
	return markets[market]
}

// SelectionKind labels how a selection was derived
type SelectionKind string

const (
	SelectionGolden SelectionKind = "golden"
	SelectionValue  SelectionKind = "value"
)

// Selection is a golden or value bet candidate
type Selection struct {
	ID          uuid.UUID        `json:"id"`
	Kind        SelectionKind    `json:"kind"`
	FixtureID   int64            `json:"fixture_id"`
	HomeTeam    string           `json:"home_team"`
	AwayTeam    string           `json:"away_team"`
	Market      string           `json:"market"`
	Probability float64          `json:"probability"`
	Odds        decimal.Decimal  `json:"odds"`
	Edge        *decimal.Decimal `json:"edge,omitempty"` // value bets only
}

// BetBuilder is a combined wager over several legs
type BetBuilder struct {
	Legs         []Selection     `json:"legs"`
	CombinedOdds decimal.Decimal `json:"combined_odds"`
}

// DailySnapshot is the full set of selections produced by one refresh
type DailySnapshot struct {
	Predictions []PredictionRow `json:"predictions"`
	Golden      []Selection     `json:"golden"`
	Value       []Selection     `json:"value"`
	BetBuilder  BetBuilder      `json:"bet_builder"`
	GeneratedAt time.Time       `json:"generated_at"`
}
