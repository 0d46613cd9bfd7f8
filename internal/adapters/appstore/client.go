// internal/adapters/appstore/client.go
package appstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"appstore_reviews/internal/adapters/observability"
	"appstore_reviews/internal/domain"
)

const DefaultBase = "https://itunes.apple.com"

// ErrTransport marks a failed HTTP exchange. Everything past the exchange
// (body, status, JSON) is absorbed as an empty page.
var ErrTransport = errors.New("appstore: transport failure")

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter // nil = unpaced
}

// New builds a client. rps <= 0 disables pacing; timeout <= 0 means no timeout.
func New(base string, timeout time.Duration, rps int) *Client {
	if base == "" {
		base = DefaultBase
	}
	c := &Client{
		base: base,
		hc:   &http.Client{Timeout: timeout},
	}
	if rps > 0 {
		c.rl = rate.NewLimiter(rate.Limit(rps), rps)
	}
	return c
}

// PageURL returns the feed URL; the region segment is only present when region != "".
func (c *Client) PageURL(appID, region string, page int) string {
	if region != "" {
		return fmt.Sprintf("%s/%s/rss/customerreviews/id=%s/sortBy=mostRecent/page=%d/json", c.base, region, appID, page)
	}
	return fmt.Sprintf("%s/rss/customerreviews/id=%s/sortBy=mostRecent/page=%d/json", c.base, appID, page)
}

// FetchPage issues one GET and maps the entries. Only transport failures are
// returned; unreadable or unparseable bodies yield an empty slice.
func (c *Client) FetchPage(ctx context.Context, appID, region string, page int) ([]domain.Review, error) {
	url := c.PageURL(appID, region, page)
	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: app %s region %q page %d: %w", ErrTransport, appID, region, page, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "appstore-reviews/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("appstore", "customerreviews", 0, time.Since(start))
		return nil, fmt.Errorf("%w: GET %s (app %s region %q page %d): %w", ErrTransport, url, appID, region, page, err)
	}
	body, rerr := io.ReadAll(resp.Body)
	resp.Body.Close()
	observability.ObserveExternal("appstore", "customerreviews", resp.StatusCode, time.Since(start))

	if rerr != nil && isTimeout(ctx, rerr) {
		return nil, fmt.Errorf("%w: read %s (app %s region %q page %d): %w", ErrTransport, url, appID, region, page, rerr)
	}
	if rerr != nil {
		log.Warn().Err(rerr).Str("url", url).Msg("read body failed, treating as empty")
		body = nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("unexpected status")
	}

	env, perr := ParseEnvelope(body)
	if perr != nil {
		observability.ObservePage(region, "parse_failed")
		log.Warn().
			Err(perr).
			Str("app", appID).
			Str("region", region).
			Int("page", page).
			Str("body", string(body)).
			Msg("feed parse failed, treating page as empty")
		return []domain.Review{}, nil
	}
	if len(env.Feed.Entry) == 0 {
		observability.ObservePage(region, "empty")
		log.Info().
			Str("app", appID).
			Str("region", region).
			Int("page", page).
			Str("body", string(body)).
			Msg("no more reviews")
		return []domain.Review{}, nil
	}

	observability.ObservePage(region, "ok")
	return mapEntries(env.Feed.Entry), nil
}

// isTimeout reports whether a body read was cut off by the client timeout or
// the caller's context, as opposed to a malformed response.
func isTimeout(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
