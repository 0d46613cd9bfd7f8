package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"appstore_reviews/internal/adapters/csvexport"
	"appstore_reviews/internal/adapters/observability"
	"appstore_reviews/internal/domain"
)

type Runner struct {
	source    domain.ReviewSource
	exporter  domain.Exporter
	outputDir string
}

func NewRunner(s domain.ReviewSource, e domain.Exporter, outputDir string) *Runner {
	return &Runner{source: s, exporter: e, outputDir: outputDir}
}

// OutputPath is where the CSV for app ends up.
func (r *Runner) OutputPath(a domain.App) string {
	return filepath.Join(r.outputDir, csvexport.FileName(a.Name))
}

// Run processes apps one at a time and stops at the first failure; later
// apps are not attempted.
func (r *Runner) Run(ctx context.Context, apps []domain.App) error {
	for _, a := range apps {
		log.Info().Str("app", a.Name).Str("id", a.ID).Msg("fetching app store reviews")

		reviews, err := r.source.GetReviews(ctx, a.ID)
		if err != nil {
			return fmt.Errorf("app %s (%s): fetch: %w", a.Name, a.ID, err)
		}

		path := r.OutputPath(a)
		if err := r.exporter.Export(path, reviews); err != nil {
			return fmt.Errorf("app %s (%s): export: %w", a.Name, a.ID, err)
		}
		observability.ObserveExport(a.ID, len(reviews))
		log.Info().Str("app", a.Name).Int("reviews", len(reviews)).Str("path", path).Msg("export ok")
	}
	return nil
}
