package testrun_artifacts_url

import (
	"testing"

	"azload-e2e/common"
	"azload-e2e/common/e2etest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestTestRunArtifactsURL(t *testing.T) {
	// Initialise test and set class and file names for reports
	e2etest.InitTesting(t, "az load test-run get-artifacts-url", "testrun_artifacts_url")
}

var _ = BeforeSuite(func(done Done) {
	e2etest.SetupTestEnv()

	close(done)
}, 300)

var _ = AfterSuite(func() {
	e2etest.TeardownTestEnv()
})

var _ = Describe("az load test-run get-artifacts-url", func() {
	var tc *e2etest.Case

	BeforeEach(func() {
		// Check ready to run
		err := e2etest.BeforeEachCheck()
		Expect(err).ToNot(HaveOccurred())
		e2etest.SkipUnlessLiveOnly("fetching artifacts urls")
		tc = e2etest.ForSpec(common.SasURLTestID, common.SasURLTestRunID)
		tc.Prepare()
	})

	AfterEach(func() {
		if tc != nil {
			tc.Cleanup()
		}
		// Check resource leakage.
		err := e2etest.AfterEachCheck()
		Expect(err).ToNot(HaveOccurred())
	})

	It("should return the artifacts url of completed and executing runs", func() {
		c := generateArtifactsURLConfig()
		tc.CreateTest(false)
		tc.CreateTestRun()
		verifyArtifactsURL(tc, tc.TestRunID)
		c.verifyRerunArtifactsURL(tc)
		rejectUnknownTestRun(tc)
	})
})
