package testrun_show

import (
	"azload-e2e/common/checks"
	"azload-e2e/common/e2etest"

	. "github.com/onsi/gomega"
)

func verifyTestRunShown(tc *e2etest.Case) {
	run := tc.ShowTestRun()
	Expect(run.Raw).To(checks.MatchJMESPath("testRunId", tc.TestRunID))
	Expect(run.TestID).To(Equal(tc.TestID))
}
