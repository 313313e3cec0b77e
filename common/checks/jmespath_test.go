package checks

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var testRun = []byte(`{
	"testRunId": "create-test-run-case",
	"description": "Sample_test_run_description",
	"environmentVariables": {"rps": "11"},
	"debugLogsEnabled": true,
	"loadTestConfiguration": {"engineInstances": 1}
}`)

var _ = Describe("JMESPath checks", func() {
	It("matches strings, nested maps, bools and numbers", func() {
		Expect(testRun).To(PassChecks(
			JMESPathCheck("testRunId", "create-test-run-case"),
			JMESPathCheck("environmentVariables.rps", "11"),
			JMESPathCheck("debugLogsEnabled", true),
			JMESPathCheck("loadTestConfiguration.engineInstances", 1),
		))
	})

	It("accepts string documents", func() {
		Expect(string(testRun)).To(MatchJMESPath("description", "Sample_test_run_description"))
	})

	It("reports every failing check", func() {
		m := PassChecks(
			JMESPathCheck("testRunId", "other"),
			JMESPathCheck("loadTestConfiguration.engineInstances", 4),
		)
		ok, err := m.Match(testRun)
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeFalse())
		msg := m.FailureMessage(testRun)
		Expect(msg).To(ContainSubstring(`query "testRunId"`))
		Expect(msg).To(ContainSubstring(`actual 1, expected 4`))
	})

	It("treats a missing field as null", func() {
		Expect(JMESPathCheck("displayName", nil).Evaluate(testRun)).To(Succeed())
		Expect(JMESPathCheck("displayName", "x").Evaluate(testRun)).ToNot(Succeed())
	})

	It("rejects unsupported actual values", func() {
		_, err := MatchJMESPath("testRunId", "x").Match(42)
		Expect(err).To(HaveOccurred())
	})

	It("rejects invalid JSON", func() {
		Expect(JMESPathCheck("a", 1).Evaluate([]byte("{"))).ToNot(Succeed())
	})
})
