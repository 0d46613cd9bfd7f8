package domain

import "context"

// FeedClient fetches a single page of reviews. An empty region means the
// storefront's default (unqualified) endpoint.
type FeedClient interface {
	FetchPage(ctx context.Context, appID, region string, page int) ([]Review, error)
}

// ReviewSource produces all reviews for one application.
type ReviewSource interface {
	GetReviews(ctx context.Context, appID string) ([]Review, error)
}

// Exporter persists the final list for one application.
type Exporter interface {
	Export(path string, reviews []Review) error
}
