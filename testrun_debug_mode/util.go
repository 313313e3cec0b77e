package testrun_debug_mode

import (
	"azload-e2e/common"
	"azload-e2e/common/checks"
	"azload-e2e/common/e2etest"

	. "github.com/onsi/gomega"
)

// createRegionalTest creates a test spreading its engines over two regions.
func createRegionalTest(tc *e2etest.Case) {
	test := tc.CreateTestFrom(tc.TestID, common.FixtureRegional, nil)
	Expect(test.TestID).To(Equal(tc.TestID))
	Expect(test.LoadTestConfiguration.EngineInstances).To(Equal(4))

	shown, err := tc.Client.ShowTest(tc.Context(), tc.TestID)
	Expect(err).ToNot(HaveOccurred())
	Expect(shown.LoadTestConfiguration.EngineInstances).To(Equal(4))
}

// createDebugTestRun runs the test in debug mode, which runs a single engine.
func createDebugTestRun(tc *e2etest.Case) {
	spec := tc.DefaultTestRunSpec()
	spec.Env = nil
	spec.Description = ""
	spec.DisplayName = ""
	spec.DebugMode = true
	run := tc.CreateTestRunWith(spec)
	Expect(run.Raw).To(checks.PassChecks(
		checks.JMESPathCheck("testRunId", tc.TestRunID),
		checks.JMESPathCheck("debugLogsEnabled", true),
		checks.JMESPathCheck("loadTestConfiguration.engineInstances", 1),
	))
}
