package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventOdds is the odds provider payload for a single event
type EventOdds struct {
	ID           string      `json:"id,omitempty"`
	SportKey     string      `json:"sport_key,omitempty"`
	HomeTeam     string      `json:"home_team,omitempty"`
	AwayTeam     string      `json:"away_team,omitempty"`
	CommenceTime string      `json:"commence_time,omitempty"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one provider bookmaker with the markets it quotes
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title,omitempty"`
	Markets []Market `json:"markets"`
}

// Market is a bet type quoted by a bookmaker (e.g. "totals")
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is a single priced side of a market
type Outcome struct {
	Name  string   `json:"name"`
	Point *float64 `json:"point,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// Find returns the first outcome with the given name, or nil
func (m Market) Find(name string) *Outcome {
	for i := range m.Outcomes {
		if m.Outcomes[i].Name == name {
			return &m.Outcomes[i]
		}
	}
	return nil
}

const (
	OutcomeOver  = "Over"
	OutcomeUnder = "Under"
)

// DiscoveredMarket is one bookmaker's quote for a discovered market key
type DiscoveredMarket struct {
	Bookmaker string   `json:"bookmaker"`
	Line      *float64 `json:"line"`
	Over      *float64 `json:"over"`
	Under     *float64 `json:"under"`
}

// DiscoveredMarkets maps market key to every bookmaker quote seen for it
type DiscoveredMarkets map[string][]DiscoveredMarket

// Category groups over/under markets by what is being counted
type Category string

const (
	CategoryGoals   Category = "goals"
	CategoryCards   Category = "cards"
	CategoryCorners Category = "corners"
)

// Line is an over/under threshold. It encodes as text so it can key JSON objects ("2.5").
type Line float64

// MarshalText implements encoding.TextMarshaler
func (l Line) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(l), 'f', -1, 64)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Line) UnmarshalText(text []byte) error {
	f, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return fmt.Errorf("invalid line %q: %w", text, err)
	}
	*l = Line(f)
	return nil
}

// NormalizedMarket is one resolved over/under quote
type NormalizedMarket struct {
	Line      float64  `json:"line"`
	Bookmaker string   `json:"bookmaker"`
	Over      *float64 `json:"over"`
	Under     *float64 `json:"under"`
}

// NormalizedOddsBundle holds at most one quote per line for each category
type NormalizedOddsBundle struct {
	Goals   map[Line]NormalizedMarket `json:"goals"`
	Cards   map[Line]NormalizedMarket `json:"cards"`
	Corners map[Line]NormalizedMarket `json:"corners"`
}

// NewNormalizedOddsBundle returns a bundle with all three categories present
func NewNormalizedOddsBundle() NormalizedOddsBundle {
	return NormalizedOddsBundle{
		Goals:   make(map[Line]NormalizedMarket),
		Cards:   make(map[Line]NormalizedMarket),
		Corners: make(map[Line]NormalizedMarket),
	}
}

// Category returns the mapping for c, or nil for an unknown category
func (b NormalizedOddsBundle) Category(c Category) map[Line]NormalizedMarket {
	switch c {
	case CategoryGoals:
		return b.Goals
	case CategoryCards:
		return b.Cards
	case CategoryCorners:
		return b.Corners
	default:
		return nil
	}
}

// Size returns the total number of quotes across categories
func (b NormalizedOddsBundle) Size() int {
	return len(b.Goals) + len(b.Cards) + len(b.Corners)
}

// Candidate is one entry offered to best-odds selection. Keys may repeat.
type Candidate struct {
	Key    string
	Market *NormalizedMarket
}

// EventOddsSummary is the pipeline result for one event, as cached and served
type EventOddsSummary struct {
	ID         uuid.UUID                   `json:"id"`
	SportKey   string                      `json:"sport_key"`
	EventID    string                      `json:"event_id"`
	HomeTeam   string                      `json:"home_team,omitempty"`
	AwayTeam   string                      `json:"away_team,omitempty"`
	Markets    DiscoveredMarkets           `json:"markets"`
	Normalized NormalizedOddsBundle        `json:"normalized"`
	Best       map[string]NormalizedMarket `json:"best"`
	Fair       map[string]FairPrice        `json:"fair,omitempty"`
	FetchedAt  time.Time                   `json:"fetched_at"`
}

// FairPrice is a two-way quote with the bookmaker margin taken out
type FairPrice struct {
	Bookmaker string          `json:"bookmaker"`
	Margin    decimal.Decimal `json:"margin"`
	Over      decimal.Decimal `json:"over"`
	Under     decimal.Decimal `json:"under"`
}
