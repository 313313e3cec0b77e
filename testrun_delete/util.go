package testrun_delete

import (
	"fmt"

	"azload-e2e/common"
	"azload-e2e/common/azcli"
	"azload-e2e/common/e2etest"

	. "github.com/onsi/gomega"
)

// deleteTestRunAndVerify deletes the run and checks that it can no longer be shown.
func deleteTestRunAndVerify(tc *e2etest.Case) {
	tc.DeleteTestRun()

	_, err := tc.Client.ShowTestRun(tc.Context(), tc.TestRunID)
	Expect(err).To(HaveOccurred(), "test run %s still exists after delete", tc.TestRunID)
	Expect(azcli.IsCommandError(err)).To(BeTrue(), "unexpected error %v", err)
	Expect(err).To(MatchError(ContainSubstring(fmt.Sprintf(common.ErrTestRunNotFoundPattern, tc.TestRunID))))
}
