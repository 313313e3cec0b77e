package loadtest

import (
	"context"

	"github.com/go-openapi/swag"
	"github.com/pkg/errors"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// UpdateOptions holds the fields of a partial update, a nil field keeps
// its current value.
type UpdateOptions struct {
	Description *string
	DisplayName *string
}

// UpdateTestRun changes the description and/or display name of a run.
func (c *Client) UpdateTestRun(ctx context.Context, testRunID string, opts UpdateOptions) (*TestRun, error) {
	if opts.Description == nil && opts.DisplayName == nil {
		return nil, errors.New("update requires a description or a display name")
	}
	logf.Log.Info("Updating test run", "testRunId", testRunID,
		"description", swag.StringValue(opts.Description), "displayName", swag.StringValue(opts.DisplayName))
	args := c.cmd("test-run", "update").Flag("test-run-id", testRunID)
	if opts.Description != nil {
		args = args.Flag("description", swag.StringValue(opts.Description))
	}
	if opts.DisplayName != nil {
		args = args.Flag("display-name", swag.StringValue(opts.DisplayName))
	}
	return c.runTestRun(ctx, args)
}
