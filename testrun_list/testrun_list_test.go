package testrun_list

import (
	"testing"

	"azload-e2e/common"
	"azload-e2e/common/e2etest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestTestRunList(t *testing.T) {
	// Initialise test and set class and file names for reports
	e2etest.InitTesting(t, "az load test-run list", "testrun_list")
}

var _ = BeforeSuite(func(done Done) {
	e2etest.SetupTestEnv()

	close(done)
}, 300)

var _ = AfterSuite(func() {
	e2etest.TeardownTestEnv()
})

var _ = Describe("az load test-run list", func() {
	var tc *e2etest.Case

	BeforeEach(func() {
		// Check ready to run
		err := e2etest.BeforeEachCheck()
		Expect(err).ToNot(HaveOccurred())
		tc = e2etest.ForSpec(common.ListTestID, common.ListTestRunID)
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

	It("should list the runs of a test", func() {
		tc.CreateTest(false)
		tc.CreateTestRun()
		verifyTestRunListed(tc)
	})
})
