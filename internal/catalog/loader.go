package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading catalog files from local disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a catalog file, gunzipping it when the name ends in .gz.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", filePath).Msg("loading catalog file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open catalog file")
		return nil, fmt.Errorf("failed to open catalog file %s: %w", filePath, err)
	}
	defer file.Close()

	cat, err := Decode(file, isGzipped(filePath))
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to parse catalog file")
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", filePath, err)
	}
	cat.Source = filePath

	l.logger.Info().
		Str("file", filePath).
		Int("rows", len(cat.Rows)).
		Int("rejected", len(cat.Errors)).
		Msg("catalog file loaded successfully")

	return cat, nil
}

func isGzipped(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".gz")
}
