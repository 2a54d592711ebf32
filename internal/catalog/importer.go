package catalog

import (
	"context"
	"fmt"

	"shopdesk/internal/metrics"
	"shopdesk/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Importer writes catalog rows into the product store.
type Importer struct {
	store  ProductStore
	logger zerolog.Logger
}

// NewImporter creates a new catalog importer.
func NewImporter(store ProductStore, logger zerolog.Logger) *Importer {
	return &Importer{
		store:  store,
		logger: logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import creates a product for every row whose name is not yet in the
// store. Rows matching an existing product by name are skipped, or
// overwrite it in ModeUpdate. Rows the store rejects are reported in the
// result; a store failure aborts the import.
func (i *Importer) Import(ctx context.Context, cat *Catalog, mode Mode) (*model.ImportResult, error) {
	result := &model.ImportResult{}
	result.Errors = append(result.Errors, cat.Errors...)
	metrics.CatalogRowsImported.WithLabelValues(metrics.ImportFailed).Add(float64(len(cat.Errors)))

	for _, row := range cat.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcome, err := i.importRow(ctx, row, mode)
		if err != nil {
			de, ok := model.AsDomainError(err)
			if !ok {
				i.logger.Error().Err(err).Int("row", row.Line).Str("source", cat.Source).Msg("catalog import aborted")
				return nil, fmt.Errorf("failed to import row %d: %w", row.Line, err)
			}
			result.Errors = append(result.Errors, model.ImportError{Row: row.Line, Message: de.Message})
			outcome = metrics.ImportFailed
		}

		switch outcome {
		case metrics.ImportCreated:
			result.Created++
		case metrics.ImportUpdated:
			result.Updated++
		case metrics.ImportSkipped:
			result.Skipped++
		}
		metrics.CatalogRowsImported.WithLabelValues(outcome).Inc()
	}

	i.logger.Info().
		Str("source", cat.Source).
		Str("mode", string(mode)).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("failed", len(result.Errors)).
		Msg("catalog imported")

	return result, nil
}

func (i *Importer) importRow(ctx context.Context, row Row, mode Mode) (string, error) {
	existing, err := i.store.FindByName(ctx, row.Input.Name)
	if err != nil {
		return "", err
	}

	if existing == nil {
		if _, err := i.store.Create(ctx, row.Input); err != nil {
			return "", err
		}
		return metrics.ImportCreated, nil
	}

	if mode != ModeUpdate {
		return metrics.ImportSkipped, nil
	}

	if _, err := i.store.Update(ctx, existing.ID, row.Input); err != nil {
		return "", err
	}
	return metrics.ImportUpdated, nil
}

// Seed loads every file concurrently and imports them in the given order
// in ModeSkip. Any load or store failure aborts seeding.
func Seed(ctx context.Context, loader Loader, importer *Importer, paths []string, logger zerolog.Logger) error {
	if len(paths) == 0 {
		return nil
	}

	catalogs := make([]*Catalog, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for idx, path := range paths {
		g.Go(func() error {
			cat, err := loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load catalog %s: %w", path, err)
			}
			catalogs[idx] = cat
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for idx, cat := range catalogs {
		result, err := importer.Import(ctx, cat, ModeSkip)
		if err != nil {
			return fmt.Errorf("failed to import catalog %s: %w", paths[idx], err)
		}
		logger.Info().
			Str("file", paths[idx]).
			Int("created", result.Created).
			Int("skipped", result.Skipped).
			Int("failed", len(result.Errors)).
			Msg("catalog seeded")
	}

	return nil
}
