package testrun_create

import (
	"azload-e2e/common"
	"azload-e2e/common/azresource"
	"azload-e2e/common/checks"
	"azload-e2e/common/e2etest"
	"azload-e2e/common/loadtest"

	. "github.com/onsi/gomega"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// createTestRun creates the run with the default arguments and verifies
// that both the create output and a subsequent show reflect them.
func createTestRun(tc *e2etest.Case) {
	run := tc.CreateTestRun()
	logf.Log.Info("Created test run", "testRunId", run.TestRunID, "status", run.Status)
	Expect(run.Raw).To(checks.PassChecks(
		checks.JMESPathCheck("testRunId", tc.TestRunID),
		checks.JMESPathCheck("description", common.DefaultTestRunDescription),
		checks.JMESPathCheck("displayName", common.DefaultTestRunDisplayName),
		checks.JMESPathCheck("environmentVariables."+common.DefaultEnvironmentVariable, common.DefaultEnvironmentValue),
	))

	shown := tc.ShowTestRun()
	Expect(shown.Raw).To(checks.MatchJMESPath("testRunId", tc.TestRunID))
}

func rejectDuplicateTestRunID(tc *e2etest.Case) {
	_, err := tc.Client.CreateTestRun(tc.Context(), loadtest.TestRunSpec{
		TestID:    tc.TestID,
		TestRunID: tc.TestRunID,
		Env:       map[string]string{common.DefaultEnvironmentVariable: common.DefaultEnvironmentValue},
	})
	Expect(err).To(HaveOccurred(), "duplicate test run id %s was accepted", tc.TestRunID)
	Expect(err).To(MatchError(ContainSubstring(common.ErrDuplicateTestRunID)))
	Expect(err).To(MatchError(ContainSubstring(common.ErrAlreadyExist)))
}

func rejectInvalidTestRunID(tc *e2etest.Case) {
	Expect(azresource.ValidateTestRunID(common.InvalidTestRunID)).ToNot(Succeed())
	_, err := tc.Client.CreateTestRun(tc.Context(), loadtest.TestRunSpec{
		TestID:    tc.TestID,
		TestRunID: common.InvalidTestRunID,
	})
	Expect(err).To(HaveOccurred(), "invalid test run id %s was accepted", common.InvalidTestRunID)
	Expect(err).To(MatchError(ContainSubstring(common.ErrInvalidTestRunID)))
}
