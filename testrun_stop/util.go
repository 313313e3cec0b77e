package testrun_stop

import (
	"azload-e2e/common"
	"azload-e2e/common/e2etest"

	. "github.com/onsi/gomega"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// stopRunningTestRun starts the run without waiting, stops it once it has
// had time to start and checks that it settles into a stopped status.
func (c *stopConfig) stopRunningTestRun(tc *e2etest.Case) {
	spec := tc.DefaultTestRunSpec()
	spec.NoWait = true
	tc.CreateTestRunWith(spec)

	e2etest.LiveSleep(c.startDelay)

	_, err := tc.Client.StopTestRun(tc.Context(), tc.TestRunID)
	Expect(err).ToNot(HaveOccurred(), "failed to stop test run %s", tc.TestRunID)

	e2etest.LiveSleep(c.settleDelay)

	run := tc.ShowTestRun()
	logf.Log.Info("Test run after stop", "testRunId", tc.TestRunID, "status", run.Status, "terminal", run.Status.IsTerminal())
	Expect(run.Status.IsStopped()).To(BeTrue(), "status %s is not one of %v", run.Status, common.StoppedStatuses())

	// A run that has ended must have been cut short by the stop.
	if elapsed, ok := run.Elapsed(); ok {
		logf.Log.Info("Stopped test run ran for", "testRunId", tc.TestRunID, "elapsed", elapsed)
		Expect(elapsed).To(BeNumerically("<", c.longRun), "test run ran its full duration of %s", c.longRun)
	}
}
