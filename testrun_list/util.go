package testrun_list

import (
	"azload-e2e/common"
	"azload-e2e/common/e2etest"
	"azload-e2e/common/loadtest"

	. "github.com/onsi/gomega"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// verifyTestRunListed checks that the case's run, and no made up run, is
// listed for its test.
func verifyTestRunListed(tc *e2etest.Case) {
	runs, err := tc.Client.ListTestRuns(tc.Context(), tc.TestID)
	Expect(err).ToNot(HaveOccurred(), "failed to list test runs of %s", tc.TestID)
	Expect(runs).ToNot(BeEmpty())

	ids := loadtest.TestRunIDs(runs)
	logf.Log.Info("Listed test runs", "testId", tc.TestID, "testRunIds", ids)
	Expect(ids).To(ContainElement(tc.TestRunID))
	Expect(ids).ToNot(ContainElement(common.FakeTestRunID))
}
