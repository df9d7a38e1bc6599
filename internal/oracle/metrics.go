package oracle

import (
	"context"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// MetricsSummary fetches the usage summary for the last N days.
func (c *Client) MetricsSummary(ctx context.Context, days int) (*MetricsSummary, error) {
	query := url.Values{"days": []string{strconv.Itoa(days)}}
	var out MetricsSummary
	if err := c.getJSON(ctx, "/api/metrics/summary", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MetricsPerformance fetches the timing percentiles.
func (c *Client) MetricsPerformance(ctx context.Context) (*MetricsPerformance, error) {
	var out MetricsPerformance
	if err := c.getJSON(ctx, "/api/metrics/performance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MetricsSatisfaction fetches the rating breakdown.
func (c *Client) MetricsSatisfaction(ctx context.Context) (*MetricsSatisfaction, error) {
	var out MetricsSatisfaction
	if err := c.getJSON(ctx, "/api/metrics/satisfaction", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchMetrics issues the three metrics requests concurrently and joins
// them into one dashboard record. The dashboard is all-or-nothing: if
// any request fails, the whole fetch fails and no partial data is
// returned. The shared context cancels the remaining requests as soon
// as one fails.
func (c *Client) FetchMetrics(ctx context.Context, days int) (*DashboardMetrics, error) {
	var metrics DashboardMetrics

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := c.MetricsSummary(ctx, days)
		if err != nil {
			return err
		}
		metrics.Summary = *summary
		return nil
	})
	g.Go(func() error {
		perf, err := c.MetricsPerformance(ctx)
		if err != nil {
			return err
		}
		metrics.Performance = *perf
		return nil
	})
	g.Go(func() error {
		sat, err := c.MetricsSatisfaction(ctx)
		if err != nil {
			return err
		}
		metrics.Satisfaction = *sat
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// SubmitFeedback posts a user rating for a recipe.
func (c *Client) SubmitFeedback(ctx context.Context, fb Feedback) error {
	return c.postJSON(ctx, "/api/metrics/feedback", fb, nil)
}
