package odds

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// Evaluation is the outcome of running an odds payload through the pipeline
type Evaluation struct {
	Event      *models.EventOdds
	Normalized models.NormalizedOddsBundle
	Best       map[string]models.NormalizedMarket
}

// Pipeline runs raw provider payloads through discovery, normalization and selection
type Pipeline struct {
	logger zerolog.Logger
}

// NewPipeline creates a new odds pipeline
func NewPipeline(logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		logger: logger.With().Str("component", "odds_pipeline").Logger(),
	}
}

// Discover parses a payload and discovers its markets. It never panics: a malformed
// payload is logged and yields whatever could be salvaged (empty for a malformed root),
// with an error wrapping ErrMalformedOdds so callers can tell it from a valid empty result.
func (p *Pipeline) Discover(data []byte) (result models.DiscoveredMarkets, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Msg("market discovery failed")
			result = models.DiscoveredMarkets{}
			err = fmt.Errorf("%w: discovery failed: %v", ErrMalformedOdds, r)
		}
	}()

	event, err := ParseEventOdds(data)
	if err != nil {
		p.logger.Warn().Err(err).Msg("discovering markets from malformed payload")
	}

	result = Discover(event)

	p.logger.Debug().
		Int("market_keys", len(result)).
		Msg("discovered event markets")

	return result, err
}

// Evaluate parses an odds payload, normalizes it and selects the best quote per line
func (p *Pipeline) Evaluate(data []byte) (*Evaluation, error) {
	event, err := ParseEventOdds(data)
	if err != nil {
		p.logger.Warn().Err(err).Msg("evaluating malformed odds payload")
	}

	eval := &Evaluation{
		Event:      event,
		Normalized: Normalize(event),
		Best:       SelectBest(Candidates(event)),
	}

	p.logger.Debug().
		Int("goals", len(eval.Normalized.Goals)).
		Int("cards", len(eval.Normalized.Cards)).
		Int("corners", len(eval.Normalized.Corners)).
		Int("best", len(eval.Best)).
		Msg("evaluated odds payload")

	return eval, err
}
