package testrun_download_files

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"azload-e2e/common"
	"azload-e2e/common/e2etest"
	"azload-e2e/common/loadtest"
	"azload-e2e/common/locations"

	. "github.com/onsi/gomega"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

var expectedFiles = []string{
	common.LogsArchive,
	common.ResultsArchive,
	common.ReportsArchive,
	common.InputArtifactsArchive,
}

var expectedExtensions = []string{".yaml", ".zip", ".jmx"}

// waitForOutputArtifacts polls until the logs and report are generated.
// Running out of attempts is logged and the download is attempted anyway.
func (c *downloadConfig) waitForOutputArtifacts(tc *e2etest.Case) {
	ready, run, err := tc.Client.WaitForOutputArtifacts(tc.Context(), tc.TestRunID, c.pollAttempts, c.pollInterval)
	Expect(err).ToNot(HaveOccurred(), "failed to poll test run %s", tc.TestRunID)
	if !ready {
		logf.Log.Info("WARNING: output artifacts are not ready, downloading anyway",
			"testRunId", tc.TestRunID, "status", run.Status)
	}
}

// downloadDir returns a new empty directory, removed when the case is torn down.
func downloadDir(tc *e2etest.Case) string {
	dir, err := ioutil.TempDir(locations.GetDownloadsDir(), "clitest-load-")
	Expect(err).ToNot(HaveOccurred())
	tc.Defer("remove download dir "+dir, func(_ context.Context) error {
		return os.RemoveAll(dir)
	})
	return dir
}

func download(tc *e2etest.Case, opts loadtest.DownloadOptions) error {
	return tc.Client.DownloadFiles(tc.Context(), tc.TestRunID, opts)
}

func allArtifacts(path string, force bool) loadtest.DownloadOptions {
	return loadtest.DownloadOptions{Path: path, Input: true, Log: true, Result: true, Report: true, Force: force}
}

// downloadAndVerify downloads every artifact into a new directory, checks
// that downloading into it again requires --force, then downloads into a
// missing directory which --force creates.
func (c *downloadConfig) downloadAndVerify(tc *e2etest.Case) {
	dir := downloadDir(tc)
	Expect(download(tc, allArtifacts(dir, false))).To(Succeed())
	verifyArtifactFiles(dir)

	err := download(tc, allArtifacts(dir, false))
	Expect(err).To(HaveOccurred(), "download into non-empty %s without --force succeeded", dir)

	Expect(download(tc, allArtifacts(dir, true))).To(Succeed())
	verifyArtifactFiles(dir)

	newDir := filepath.Join(dir, "new")
	Expect(download(tc, allArtifacts(newDir, true))).To(Succeed())
	verifyArtifactFiles(newDir)
}

func verifyArtifactFiles(dir string) {
	entries, err := ioutil.ReadDir(dir)
	Expect(err).ToNot(HaveOccurred())

	var files, exts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
		exts = append(exts, strings.ToLower(filepath.Ext(e.Name())))
	}
	logf.Log.Info("Downloaded", "dir", dir, "files", files)

	Expect(len(files)).To(BeNumerically(">=", len(expectedFiles)))
	for _, f := range expectedFiles {
		Expect(files).To(ContainElement(f))
	}
	for _, ext := range expectedExtensions {
		Expect(exts).To(ContainElement(ext), "no %s file in %v", ext, files)
	}
}

// downloadHighScaleAndVerify checks that the logs and results of a
// high scale run are downloaded as directories.
func (c *downloadConfig) downloadHighScaleAndVerify(tc *e2etest.Case) {
	dir := downloadDir(tc)
	Expect(download(tc, loadtest.DownloadOptions{Path: dir, Log: true, Result: true})).To(Succeed())

	entries, err := ioutil.ReadDir(dir)
	Expect(err).ToNot(HaveOccurred())
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	logf.Log.Info("Downloaded", "dir", dir, "entries", names)
	for _, d := range []string{common.LogsDir, common.ResultsDir} {
		Expect(filepath.Join(dir, d)).To(BeADirectory())
	}
}
