package loadtest

import (
	"context"
	"time"

	"azload-e2e/common"
	"azload-e2e/common/azcli"
	"azload-e2e/common/checks"

	"github.com/go-openapi/swag"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const showRunning = `{"testRunId": "run-1", "testId": "test-1", "status": "EXECUTING", "testArtifacts": {"outputArtifacts": {}}}`
const showDone = `{
	"testRunId": "run-1",
	"testId": "test-1",
	"status": "DONE",
	"startDateTime": "2024-05-13T10:00:00.000Z",
	"endDateTime": "2024-05-13T10:05:00.000Z",
	"testArtifacts": {"outputArtifacts": {
		"logsFileInfo": {"fileName": "logs.zip", "url": "https://a.blob.storage.azure.net/logs.zip"},
		"reportFileInfo": {"fileName": "reports.zip", "url": "https://a.blob.storage.azure.net/reports.zip"}
	}}
}`

var _ = Describe("Client", func() {
	var (
		ctx    context.Context
		fake   *fakeExecutor
		client *Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		fake = newFakeExecutor()
		client = NewClient(fake, Scope{ResourceGroup: "rg", LoadTestResource: "lt"})
	})

	It("scopes every command to the load test resource", func() {
		fake.on("load test-run show", showDone, nil)
		_, err := client.ShowTestRun(ctx, "run-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(fake.lastCall()).To(Equal([]string{
			"load", "test-run", "show",
			"--load-test-resource", "lt",
			"--resource-group", "rg",
			"--test-run-id", "run-1",
		}))
	})

	It("decodes a test run and keeps the raw document", func() {
		fake.on("load test-run show", showDone, nil)
		run, err := client.ShowTestRun(ctx, "run-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(run.Status).To(Equal(common.StatusDone))
		Expect(run.OutputArtifacts().Ready()).To(BeTrue())
		elapsed, ok := run.Elapsed()
		Expect(ok).To(BeTrue())
		Expect(elapsed).To(Equal(5 * time.Minute))
		Expect(run.Raw).To(checks.MatchJMESPath("testArtifacts.outputArtifacts.logsFileInfo.fileName", "logs.zip"))
	})

	It("reports no elapsed time before the run has ended", func() {
		fake.on("load test-run show", showRunning, nil)
		run, err := client.ShowTestRun(ctx, "run-1")
		Expect(err).ToNot(HaveOccurred())
		_, ok := run.Elapsed()
		Expect(ok).To(BeFalse())
	})

	It("builds test-run create flags", func() {
		fake.on("load test-run create", `{"testRunId": "run-1"}`, nil)
		run, err := client.CreateTestRun(ctx, TestRunSpec{
			TestID:      "test-1",
			TestRunID:   "run-1",
			Env:         map[string]string{"rps": "11"},
			Description: "d",
			DisplayName: "n",
			DebugMode:   true,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(run.TestRunID).To(Equal("run-1"))
		Expect(fake.lastCall()[7:]).To(Equal([]string{
			"--test-id", "test-1",
			"--test-run-id", "run-1",
			"--env", "rps=11",
			"--description", "d",
			"--display-name", "n",
			"--debug-mode",
		}))
	})

	It("tolerates empty output for a no-wait rerun", func() {
		fake.on("load test-run create", "", nil)
		run, err := client.CreateTestRun(ctx, TestRunSpec{
			TestID:            "test-1",
			TestRunID:         "run-2",
			ExistingTestRunID: "run-1",
			NoWait:            true,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(run).To(BeNil())
		Expect(fake.lastCall()).To(ContainElement("--no-wait"))
		Expect(fake.lastCall()).To(ContainElement("--existing-test-run-id"))
	})

	It("passes only the fields of a partial update", func() {
		fake.on("load test-run update", `{"testRunId": "run-1", "displayName": "n2", "description": "d1"}`, nil)
		run, err := client.UpdateTestRun(ctx, "run-1", UpdateOptions{DisplayName: swag.String("n2")})
		Expect(err).ToNot(HaveOccurred())
		Expect(run.Description).To(Equal("d1"))
		Expect(fake.lastCall()).To(ContainElement("--display-name"))
		Expect(fake.lastCall()).ToNot(ContainElement("--description"))
	})

	It("rejects an empty update", func() {
		_, err := client.UpdateTestRun(ctx, "run-1", UpdateOptions{})
		Expect(err).To(HaveOccurred())
		Expect(fake.calls).To(BeEmpty())
	})

	It("lists run ids", func() {
		fake.on("load test-run list", `[{"testRunId": "a"}, {"testRunId": "b"}]`, nil)
		runs, err := client.ListTestRuns(ctx, "test-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(TestRunIDs(runs)).To(Equal([]string{"a", "b"}))
	})

	It("surfaces CLI errors", func() {
		fake.on("load test-run get-artifacts-url", "", &azcli.CommandError{
			ExitCode: 1,
			Stderr:   `(TestRunNotFound) Test run not found with given name "x"`,
		})
		_, err := client.GetArtifactsURL(ctx, "x")
		Expect(err).To(MatchError(ContainSubstring("(TestRunNotFound)")))
	})

	It("decodes the artifacts url", func() {
		fake.on("load test-run get-artifacts-url", `"https://abc.blob.storage.azure.net/container?sig=x"`, nil)
		u, err := client.GetArtifactsURL(ctx, "run-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(ValidateArtifactsURL(u, common.ArtifactsURLStorageHost)).To(Succeed())
	})

	It("validates artifacts urls", func() {
		Expect(ValidateArtifactsURL("http://abc.blob.storage.azure.net/c", common.ArtifactsURLStorageHost)).ToNot(Succeed())
		Expect(ValidateArtifactsURL("https://example.com/c", common.ArtifactsURLStorageHost)).ToNot(Succeed())
		Expect(ValidateArtifactsURL("not a url", common.ArtifactsURLStorageHost)).ToNot(Succeed())
	})

	It("builds download flags", func() {
		fake.on("load test-run download-files", "", nil)
		err := client.DownloadFiles(ctx, "run-1", DownloadOptions{Path: "/tmp/x", Input: true, Log: true, Force: true})
		Expect(err).ToNot(HaveOccurred())
		Expect(fake.lastCall()[7:]).To(Equal([]string{
			"--test-run-id", "run-1",
			"--path", "/tmp/x",
			"--input", "--log", "--force",
		}))
		Expect(client.DownloadFiles(ctx, "run-1", DownloadOptions{})).ToNot(Succeed())
	})

	Describe("waiting for output artifacts", func() {
		It("stops polling once logs and report exist", func() {
			fake.on("load test-run show", showRunning, nil).
				on("load test-run show", showRunning, nil).
				on("load test-run show", showDone, nil)
			ready, run, err := client.WaitForOutputArtifacts(ctx, "run-1", 10, time.Millisecond)
			Expect(err).ToNot(HaveOccurred())
			Expect(ready).To(BeTrue())
			Expect(run.Status).To(Equal(common.StatusDone))
			Expect(fake.callCount("load test-run show")).To(Equal(3))
		})

		It("gives up quietly after the poll budget", func() {
			fake.on("load test-run show", showRunning, nil)
			ready, run, err := client.WaitForOutputArtifacts(ctx, "run-1", 4, time.Millisecond)
			Expect(err).ToNot(HaveOccurred())
			Expect(ready).To(BeFalse())
			Expect(run.Status).To(Equal(common.StatusExecuting))
			Expect(fake.callCount("load test-run show")).To(Equal(4))
		})

		It("waits after the last miss too", func() {
			fake.on("load test-run show", showRunning, nil)
			interval := 20 * time.Millisecond
			start := time.Now()
			ready, _, err := client.WaitForOutputArtifacts(ctx, "run-1", 2, interval)
			Expect(err).ToNot(HaveOccurred())
			Expect(ready).To(BeFalse())
			Expect(time.Since(start)).To(BeNumerically(">=", 2*interval))
			Expect(fake.callCount("load test-run show")).To(Equal(2))
		})

		It("stops when the context is cancelled", func() {
			fake.on("load test-run show", showRunning, nil)
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			ready, _, err := client.WaitForOutputArtifacts(cancelled, "run-1", 10, time.Hour)
			Expect(err).To(MatchError(context.Canceled))
			Expect(ready).To(BeFalse())
			Expect(fake.callCount("load test-run show")).To(BeZero())
		})

		It("fails when show fails", func() {
			fake.on("load test-run show", "", &azcli.CommandError{ExitCode: 1, Stderr: "boom"})
			_, _, err := client.WaitForOutputArtifacts(ctx, "run-1", 4, time.Millisecond)
			Expect(err).To(MatchError(ContainSubstring("boom")))
			Expect(fake.callCount("load test-run show")).To(Equal(1))
		})
	})
})
