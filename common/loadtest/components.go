package loadtest

import (
	"context"

	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// AppComponentSpec describes az load test-run app-component add.
type AppComponentSpec struct {
	ID   string
	Name string
	Type string
	Kind string
}

func (c *Client) AddAppComponent(ctx context.Context, testRunID string, spec AppComponentSpec) (*AppComponents, error) {
	logf.Log.Info("Adding app component", "testRunId", testRunID, "id", spec.ID, "type", spec.Type)
	args := c.cmd("test-run", "app-component", "add").
		Flag("test-run-id", testRunID).
		Flag("app-component-name", spec.Name).
		Flag("app-component-type", spec.Type).
		Flag("app-component-id", spec.ID).
		FlagIf("app-component-kind", spec.Kind)
	var out AppComponents
	if err := c.runInto(ctx, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListAppComponents(ctx context.Context, testRunID string) (*AppComponents, error) {
	var out AppComponents
	if err := c.runInto(ctx, c.cmd("test-run", "app-component", "list").Flag("test-run-id", testRunID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveAppComponent(ctx context.Context, testRunID, id string) error {
	logf.Log.Info("Removing app component", "testRunId", testRunID, "id", id)
	args := c.cmd("test-run", "app-component", "remove").
		Flag("test-run-id", testRunID).
		Flag("app-component-id", id).
		Switch("yes", true)
	_, err := c.run(ctx, args)
	return err
}

// ServerMetricSpec describes az load test-run server-metric add.
type ServerMetricSpec struct {
	ID               string
	Name             string
	Namespace        string
	Aggregation      string
	AppComponentID   string
	AppComponentType string
}

func (c *Client) AddServerMetric(ctx context.Context, testRunID string, spec ServerMetricSpec) (*ServerMetrics, error) {
	logf.Log.Info("Adding server metric", "testRunId", testRunID, "id", spec.ID)
	args := c.cmd("test-run", "server-metric", "add").
		Flag("test-run-id", testRunID).
		Flag("metric-id", spec.ID).
		Flag("metric-name", spec.Name).
		Flag("metric-namespace", spec.Namespace).
		Flag("aggregation", spec.Aggregation).
		Flag("app-component-type", spec.AppComponentType).
		Flag("app-component-id", spec.AppComponentID)
	var out ServerMetrics
	if err := c.runInto(ctx, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListServerMetrics(ctx context.Context, testRunID string) (*ServerMetrics, error) {
	var out ServerMetrics
	if err := c.runInto(ctx, c.cmd("test-run", "server-metric", "list").Flag("test-run-id", testRunID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveServerMetric(ctx context.Context, testRunID, id string) error {
	logf.Log.Info("Removing server metric", "testRunId", testRunID, "id", id)
	args := c.cmd("test-run", "server-metric", "remove").
		Flag("test-run-id", testRunID).
		Flag("metric-id", id).
		Switch("yes", true)
	_, err := c.run(ctx, args)
	return err
}
