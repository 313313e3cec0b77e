package e2etest

import (
	"context"
	"io/ioutil"
	"os"
	"strconv"

	"azload-e2e/common"
	"azload-e2e/common/fixtures"
	"azload-e2e/common/loadtest"

	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

// CreateTest creates the case's test from the standard fixture. A long
// test runs for the configured long run duration so that a run can be
// observed while it executes.
func (c *Case) CreateTest(isLong bool) *loadtest.Test {
	var env map[string]string
	if isLong {
		env = map[string]string{"duration": strconv.Itoa(c.settings.LongRunDuration)}
	}
	return c.CreateTestFrom(c.TestID, common.FixtureStandard, env)
}

// CreateTestFrom renders a fixture of the given kind and creates testID from it.
func (c *Case) CreateTestFrom(testID string, kind common.FixtureKind, env map[string]string) *loadtest.Test {
	Expect(c.Client).ToNot(BeNil(), "resources have not been prepared")
	dir, err := ioutil.TempDir(c.settings.FixturesDir, testID+"-")
	Expect(err).ToNot(HaveOccurred())
	c.Defer("remove fixture "+dir, func(context.Context) error {
		return errors.Wrap(os.RemoveAll(dir), "removing fixture")
	})
	files, err := fixtures.Render(dir, kind, fixtures.Options{
		TestID:                   testID,
		Location:                 c.settings.Location,
		HighScaleEngineInstances: c.settings.HighScaleEngineInstances,
	})
	Expect(err).ToNot(HaveOccurred(), "failed to render %s fixture", kind)
	c.Fixture = files

	test, err := c.Client.CreateTest(c.ctx, loadtest.TestSpec{
		TestID:     testID,
		ConfigFile: files.ConfigFile,
		TestPlan:   files.TestPlan,
		Env:        env,
	})
	Expect(err).ToNot(HaveOccurred(), "failed to create test %s", testID)
	Expect(test.TestID).To(Equal(testID))
	c.tests[testID] = true
	c.DeferResource("delete test "+testID, func(ctx context.Context) error {
		if !c.tests[testID] {
			return nil
		}
		return c.Client.DeleteTest(ctx, testID)
	})
	return test
}

// CreateTestRun starts the case's run with the default environment,
// description and display name and waits for it to finish.
func (c *Case) CreateTestRun() *loadtest.TestRun {
	return c.CreateTestRunWith(c.DefaultTestRunSpec())
}

func (c *Case) DefaultTestRunSpec() loadtest.TestRunSpec {
	return loadtest.TestRunSpec{
		TestID:      c.TestID,
		TestRunID:   c.TestRunID,
		Env:         map[string]string{common.DefaultEnvironmentVariable: common.DefaultEnvironmentValue},
		Description: common.DefaultTestRunDescription,
		DisplayName: common.DefaultTestRunDisplayName,
	}
}

func (c *Case) CreateTestRunWith(spec loadtest.TestRunSpec) *loadtest.TestRun {
	Expect(c.Client).ToNot(BeNil(), "resources have not been prepared")
	run, err := c.Client.CreateTestRun(c.ctx, spec)
	Expect(err).ToNot(HaveOccurred(), "failed to create test run %s", spec.TestRunID)
	if !spec.NoWait {
		Expect(run).ToNot(BeNil(), "test-run create printed nothing")
	}
	if run != nil {
		Expect(run.TestRunID).To(Equal(spec.TestRunID))
	}
	return run
}

// DeleteTest deletes the case's test, which also deletes its runs.
func (c *Case) DeleteTest() {
	c.DeleteTestByID(c.TestID)
}

func (c *Case) DeleteTestByID(testID string) {
	err := c.Client.DeleteTest(c.ctx, testID)
	Expect(err).ToNot(HaveOccurred(), "failed to delete test %s", testID)
	c.tests[testID] = false
}

func (c *Case) DeleteTestRun() {
	err := c.Client.DeleteTestRun(c.ctx, c.TestRunID)
	Expect(err).ToNot(HaveOccurred(), "failed to delete test run %s", c.TestRunID)
}

// ShowTestRun shows the case's run and fails the spec if that fails.
func (c *Case) ShowTestRun() *loadtest.TestRun {
	run, err := c.Client.ShowTestRun(c.ctx, c.TestRunID)
	Expect(err).ToNot(HaveOccurred(), "failed to show test run %s", c.TestRunID)
	return run
}
