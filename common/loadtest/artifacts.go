package loadtest

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/wait"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// DownloadOptions selects what az load test-run download-files fetches.
type DownloadOptions struct {
	Path   string
	Input  bool
	Log    bool
	Result bool
	Report bool
	// Force downloads into a destination which is missing or not empty.
	Force bool
}

func (c *Client) DownloadFiles(ctx context.Context, testRunID string, opts DownloadOptions) error {
	if opts.Path == "" {
		return errors.New("download requires a path")
	}
	logf.Log.Info("Downloading test run files", "testRunId", testRunID, "path", opts.Path, "force", opts.Force)
	args := c.cmd("test-run", "download-files").
		Flag("test-run-id", testRunID).
		Flag("path", opts.Path).
		Switch("input", opts.Input).
		Switch("log", opts.Log).
		Switch("result", opts.Result).
		Switch("report", opts.Report).
		Switch("force", opts.Force)
	_, err := c.run(ctx, args)
	return err
}

// GetArtifactsURL returns the SAS URL of the run's artifacts container.
func (c *Client) GetArtifactsURL(ctx context.Context, testRunID string) (string, error) {
	var sasURL string
	if err := c.runInto(ctx, c.cmd("test-run", "get-artifacts-url").Flag("test-run-id", testRunID), &sasURL); err != nil {
		return "", err
	}
	return sasURL, nil
}

// ValidateArtifactsURL checks that u is an https URL on the given host suffix.
func ValidateArtifactsURL(u, hostSuffix string) error {
	parsed, err := url.Parse(u)
	if err != nil {
		return errors.Wrapf(err, "parsing %q", u)
	}
	if parsed.Scheme != "https" {
		return errors.Errorf("%q: scheme %q, expected https", u, parsed.Scheme)
	}
	if !strings.HasSuffix(parsed.Host, hostSuffix) {
		return errors.Errorf("%q: host %q is not under %s", u, parsed.Host, hostSuffix)
	}
	return nil
}

// WaitForOutputArtifacts shows the run up to attempts times until its logs
// and report are available, waiting interval after every miss including
// the last one. Running out of attempts is not an error: ready is false
// and the caller decides whether to go on. Cancelling ctx ends the wait
// with ctx's error.
func (c *Client) WaitForOutputArtifacts(ctx context.Context, testRunID string, attempts int, interval time.Duration) (bool, *TestRun, error) {
	var (
		last   *TestRun
		ready  bool
		misses int
	)
	err := wait.PollImmediateUntil(interval, func() (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if misses >= attempts {
			return true, nil
		}
		run, err := c.ShowTestRun(ctx, testRunID)
		if err != nil {
			return false, err
		}
		last = run
		ready = run.OutputArtifacts().Ready()
		logf.Log.Info("Output artifacts", "testRunId", testRunID, "status", run.Status, "ready", ready)
		if !ready {
			misses++
		}
		return ready, nil
	}, ctx.Done())
	if err == wait.ErrWaitTimeout && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		return false, last, err
	}
	if !ready {
		logf.Log.Info("Output artifacts not ready, poll budget exhausted", "testRunId", testRunID, "attempts", attempts)
	}
	return ready, last, nil
}
