package predictions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

const (
	PredictionsFile = "predictions.json"
	OddsFile        = "odds_snapshot.json"
)

// FileSource loads model output written by the ML pipeline into a directory
type FileSource struct {
	dir    string
	logger zerolog.Logger
}

// NewFileSource creates a source reading from dir
func NewFileSource(dir string, logger zerolog.Logger) *FileSource {
	return &FileSource{
		dir:    dir,
		logger: logger.With().Str("component", "prediction_source").Logger(),
	}
}

// Dir returns the outputs directory
func (s *FileSource) Dir() string {
	return s.dir
}

// Load reads both the predictions file and the odds snapshot
func (s *FileSource) Load(ctx context.Context) (*models.PredictionBatch, models.OddsByFixture, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	batch, err := s.loadPredictions()
	if err != nil {
		return nil, nil, err
	}

	odds := make(models.OddsByFixture)
	if err := readJSON(filepath.Join(s.dir, OddsFile), &odds); err != nil {
		return nil, nil, err
	}

	s.logger.Debug().
		Int("predictions", len(batch.Predictions)).
		Int("fixtures_with_odds", len(odds)).
		Msg("loaded model outputs")

	return batch, odds, nil
}

// loadPredictions accepts either the batch envelope or a bare array of rows
func (s *FileSource) loadPredictions() (*models.PredictionBatch, error) {
	path := filepath.Join(s.dir, PredictionsFile)

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []models.PredictionRow
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return &models.PredictionBatch{Success: true, Total: len(rows), Predictions: rows}, nil
	}

	var batch models.PredictionBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &batch, nil
}

func readJSON(path string, v any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("missing required file %s: %w", path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
