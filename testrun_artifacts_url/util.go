package testrun_artifacts_url

import (
	"fmt"
	"strings"

	"azload-e2e/common"
	"azload-e2e/common/e2etest"
	"azload-e2e/common/loadtest"

	. "github.com/onsi/gomega"
)

func verifyArtifactsURL(tc *e2etest.Case, testRunID string) {
	u, err := tc.Client.GetArtifactsURL(tc.Context(), testRunID)
	Expect(err).ToNot(HaveOccurred(), "failed to get artifacts url of %s", testRunID)
	Expect(strings.HasPrefix(u, common.ArtifactsURLScheme)).To(BeTrue(), "artifacts url is not https")
	Expect(u).To(ContainSubstring(common.ArtifactsURLStorageHost))
	Expect(loadtest.ValidateArtifactsURL(u, common.ArtifactsURLStorageHost)).To(Succeed())
}

// verifyRerunArtifactsURL reruns the case's run without waiting and
// checks that the artifacts url is available while it executes. The
// rerun is stopped afterwards so that it does not outlive the spec.
func (c *artifactsURLConfig) verifyRerunArtifactsURL(tc *e2etest.Case) {
	tc.CreateTestRunWith(loadtest.TestRunSpec{
		TestID:            tc.TestID,
		TestRunID:         common.SasURLRerunTestRunID,
		ExistingTestRunID: tc.TestRunID,
		NoWait:            true,
	})
	e2etest.LiveSleep(c.rerunStartDelay)

	rerun, err := tc.Client.ShowTestRun(tc.Context(), common.SasURLRerunTestRunID)
	Expect(err).ToNot(HaveOccurred())
	Expect(rerun.Status).ToNot(Equal(common.StatusDone))

	verifyArtifactsURL(tc, common.SasURLRerunTestRunID)

	_, err = tc.Client.StopTestRun(tc.Context(), common.SasURLRerunTestRunID)
	Expect(err).ToNot(HaveOccurred())
	e2etest.LiveSleep(c.stopSettleDelay)
}

// rejectUnknownTestRun asks for the artifacts url of a run that does not
// exist on this resource.
func rejectUnknownTestRun(tc *e2etest.Case) {
	_, err := tc.Client.GetArtifactsURL(tc.Context(), common.CreateTestRunID)
	Expect(err).To(HaveOccurred())
	Expect(err).To(MatchError(ContainSubstring(fmt.Sprintf(common.ErrTestRunNotFoundPattern, common.CreateTestRunID))))
}
