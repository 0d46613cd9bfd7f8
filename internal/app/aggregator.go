package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"appstore_reviews/internal/domain"
)

const DefaultPages = 10

var DefaultRegions = []string{"cn", "us"}

type AggregatorOptions struct {
	Pages   int      // pages per batch, 1..Pages
	Regions []string // fetched after the unqualified batch, in order
	Workers int      // concurrent page fetches; <= 1 is sequential
	Dedup   bool     // drop repeated review IDs, first occurrence wins
}

// Aggregator pulls a fixed number of pages from the default storefront and
// then from every configured region. No continuation cursor is honored.
type Aggregator struct {
	feed domain.FeedClient
	opts AggregatorOptions
}

func NewAggregator(f domain.FeedClient, opts AggregatorOptions) *Aggregator {
	if opts.Pages <= 0 {
		opts.Pages = DefaultPages
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Aggregator{feed: f, opts: opts}
}

type pageKey struct {
	region string
	page   int
}

// plan lists every (region, page) request in output order.
func (a *Aggregator) plan() []pageKey {
	batches := append([]string{""}, a.opts.Regions...)
	keys := make([]pageKey, 0, len(batches)*a.opts.Pages)
	for _, region := range batches {
		for p := 1; p <= a.opts.Pages; p++ {
			keys = append(keys, pageKey{region: region, page: p})
		}
	}
	return keys
}

// GetReviews returns every review in (batch, page, entry) order. Any fetch
// error discards what was collected so far.
func (a *Aggregator) GetReviews(ctx context.Context, appID string) ([]domain.Review, error) {
	keys := a.plan()

	var (
		out []domain.Review
		err error
	)
	if a.opts.Workers == 1 {
		out, err = a.sequential(ctx, appID, keys)
	} else {
		out, err = a.concurrent(ctx, appID, keys)
	}
	if err != nil {
		return nil, err
	}
	if a.opts.Dedup {
		out = dedupByID(out)
	}
	return out, nil
}

func (a *Aggregator) sequential(ctx context.Context, appID string, keys []pageKey) ([]domain.Review, error) {
	var out []domain.Review
	for _, k := range keys {
		rs, err := a.feed.FetchPage(ctx, appID, k.region, k.page)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}

// concurrent fills one slot per key so concatenation order never depends on
// completion order.
func (a *Aggregator) concurrent(ctx context.Context, appID string, keys []pageKey) ([]domain.Review, error) {
	slots := make([][]domain.Review, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)
	for i, k := range keys {
		g.Go(func() error {
			rs, err := a.feed.FetchPage(gctx, appID, k.region, k.page)
			if err != nil {
				return err
			}
			slots[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []domain.Review
	for _, rs := range slots {
		out = append(out, rs...)
	}
	return out, nil
}

// dedupByID keeps the first review per ID. Reviews without an ID are kept.
func dedupByID(in []domain.Review) []domain.Review {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		if r.ID != "" {
			if _, ok := seen[r.ID]; ok {
				continue
			}
			seen[r.ID] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}
