package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"appstore_reviews/internal/adapters/appstore"
	"appstore_reviews/internal/adapters/csvexport"
	"appstore_reviews/internal/adapters/observability"
	"appstore_reviews/internal/app"
	"appstore_reviews/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1) initialize global logger first so config warnings carry the run_id
	log.Logger = observability.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log.Info().
		Str("base", cfg.BaseURL).
		Strs("regions", cfg.Regions).
		Int("pages", cfg.Pages).
		Int("workers", cfg.Workers).
		Int("apps", len(cfg.Apps)).
		Msg("scraper starting")

	reg := observability.InitRegistry()
	if srv := observability.Serve(cfg.MetricsAddr, reg); srv != nil {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	client := appstore.New(cfg.BaseURL, cfg.HTTPTimeout, cfg.RPS)
	agg := app.NewAggregator(client, app.AggregatorOptions{
		Pages:   cfg.Pages,
		Regions: cfg.Regions,
		Workers: cfg.Workers,
		Dedup:   cfg.Dedup,
	})
	runner := app.NewRunner(agg, csvexport.New(), cfg.OutputDir)

	if err := runner.Run(ctx, cfg.Apps); err != nil {
		log.Fatal().Err(err).Msg("scrape failed")
	}
	log.Info().Msg("scrape completed")
}
