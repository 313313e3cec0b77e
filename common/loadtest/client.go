// Package loadtest is the typed surface of the az load test and
// az load test-run command groups.
package loadtest

import (
	"context"
	"encoding/json"

	"azload-e2e/common/azcli"

	"github.com/pkg/errors"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

type Client struct {
	az    azcli.Executor
	scope Scope
}

func NewClient(az azcli.Executor, scope Scope) *Client {
	return &Client{az: az, scope: scope}
}

// cmd starts an "az load ..." argument list scoped to the load test resource.
func (c *Client) cmd(words ...string) azcli.Args {
	return azcli.Cmd(append([]string{"load"}, words...)...).
		Flag("load-test-resource", c.scope.LoadTestResource).
		Flag("resource-group", c.scope.ResourceGroup)
}

func (c *Client) run(ctx context.Context, args azcli.Args) (*azcli.Result, error) {
	return c.az.Run(ctx, args.Strings()...)
}

func (c *Client) runInto(ctx context.Context, args azcli.Args, v interface{}) error {
	res, err := c.run(ctx, args)
	if err != nil {
		return err
	}
	return res.JSON(v)
}

func (c *Client) runTestRun(ctx context.Context, args azcli.Args) (*TestRun, error) {
	res, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}
	return decodeTestRun(res)
}

func decodeTestRun(res *azcli.Result) (*TestRun, error) {
	var run TestRun
	if err := res.JSON(&run); err != nil {
		return nil, err
	}
	run.Raw = json.RawMessage(res.Stdout)
	return &run, nil
}

// TestSpec describes az load test create.
type TestSpec struct {
	TestID     string
	ConfigFile string
	// TestPlan overrides the plan referenced by the config file.
	TestPlan string
	Env      map[string]string
}

func (c *Client) CreateTest(ctx context.Context, spec TestSpec) (*Test, error) {
	logf.Log.Info("Creating test", "testId", spec.TestID, "config", spec.ConfigFile)
	args := c.cmd("test", "create").
		Flag("test-id", spec.TestID).
		FlagIf("load-test-config-file", spec.ConfigFile).
		FlagIf("test-plan", spec.TestPlan).
		Pairs("env", spec.Env)
	var test Test
	if err := c.runInto(ctx, args, &test); err != nil {
		return nil, errors.Wrapf(err, "creating test %s", spec.TestID)
	}
	return &test, nil
}

func (c *Client) ShowTest(ctx context.Context, testID string) (*Test, error) {
	var test Test
	if err := c.runInto(ctx, c.cmd("test", "show").Flag("test-id", testID), &test); err != nil {
		return nil, err
	}
	return &test, nil
}

func (c *Client) DeleteTest(ctx context.Context, testID string) error {
	logf.Log.Info("Deleting test", "testId", testID)
	_, err := c.run(ctx, c.cmd("test", "delete").Flag("test-id", testID).Switch("yes", true))
	return err
}

// TestRunSpec describes az load test-run create.
type TestRunSpec struct {
	TestID            string
	TestRunID         string
	Env               map[string]string
	Description       string
	DisplayName       string
	DebugMode         bool
	ExistingTestRunID string
	NoWait            bool
}

// CreateTestRun starts a run. Unless NoWait is set the CLI blocks until
// the run reaches a terminal status. With NoWait the CLI may print
// nothing, in which case the returned run is nil.
func (c *Client) CreateTestRun(ctx context.Context, spec TestRunSpec) (*TestRun, error) {
	logf.Log.Info("Creating test run", "testId", spec.TestID, "testRunId", spec.TestRunID, "noWait", spec.NoWait)
	args := c.cmd("test-run", "create").
		Flag("test-id", spec.TestID).
		Flag("test-run-id", spec.TestRunID).
		Pairs("env", spec.Env).
		FlagIf("description", spec.Description).
		FlagIf("display-name", spec.DisplayName).
		Switch("debug-mode", spec.DebugMode).
		FlagIf("existing-test-run-id", spec.ExistingTestRunID).
		Switch("no-wait", spec.NoWait)
	res, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return nil, nil
	}
	return decodeTestRun(res)
}

func (c *Client) ShowTestRun(ctx context.Context, testRunID string) (*TestRun, error) {
	return c.runTestRun(ctx, c.cmd("test-run", "show").Flag("test-run-id", testRunID))
}

func (c *Client) ListTestRuns(ctx context.Context, testID string) ([]TestRun, error) {
	var runs []TestRun
	if err := c.runInto(ctx, c.cmd("test-run", "list").Flag("test-id", testID), &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// TestRunIDs returns the ids of runs.
func TestRunIDs(runs []TestRun) []string {
	ids := make([]string, 0, len(runs))
	for _, r := range runs {
		ids = append(ids, r.TestRunID)
	}
	return ids
}

// StopTestRun requests the run to stop. The returned run is nil if the
// CLI printed nothing.
func (c *Client) StopTestRun(ctx context.Context, testRunID string) (*TestRun, error) {
	logf.Log.Info("Stopping test run", "testRunId", testRunID)
	res, err := c.run(ctx, c.cmd("test-run", "stop").Flag("test-run-id", testRunID).Switch("yes", true))
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return nil, nil
	}
	return decodeTestRun(res)
}

func (c *Client) DeleteTestRun(ctx context.Context, testRunID string) error {
	logf.Log.Info("Deleting test run", "testRunId", testRunID)
	_, err := c.run(ctx, c.cmd("test-run", "delete").Flag("test-run-id", testRunID).Switch("yes", true))
	return err
}
