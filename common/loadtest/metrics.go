package loadtest

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// MetricsQuery describes az load test-run metrics list with a metric name.
type MetricsQuery struct {
	Namespace        string
	Name             string
	DimensionFilters []string
	Aggregation      string
	Interval         string
}

// ListMetricNames runs metrics list without a metric name, the CLI then
// reports the namespace's metrics keyed by name.
func (c *Client) ListMetricNames(ctx context.Context, testRunID, namespace string) ([]string, error) {
	args := c.cmd("test-run", "metrics", "list").
		Flag("test-run-id", testRunID).
		Flag("metric-namespace", namespace)
	res, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := res.JSON(&raw); err != nil {
		return nil, err
	}
	return metricNames(raw)
}

func metricNames(raw json.RawMessage) ([]string, error) {
	var byName map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byName); err == nil {
		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, errors.Wrap(err, "metrics list output is neither a map nor a list of names")
	}
	return names, nil
}

// ListMetrics returns the time series of one metric.
func (c *Client) ListMetrics(ctx context.Context, testRunID string, q MetricsQuery) ([]MetricEntry, error) {
	if q.Name == "" {
		return nil, errors.New("metrics query requires a metric name")
	}
	args := c.cmd("test-run", "metrics", "list").
		Flag("test-run-id", testRunID).
		Flag("metric-namespace", q.Namespace).
		Flag("metric-name", q.Name).
		FlagIf("aggregation", q.Aggregation).
		FlagIf("interval", q.Interval)
	if len(q.DimensionFilters) > 0 {
		args = append(args, "--dimension-filters")
		args = append(args, q.DimensionFilters...)
	}
	var entries []MetricEntry
	if err := c.runInto(ctx, args, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
