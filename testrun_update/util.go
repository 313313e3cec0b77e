package testrun_update

import (
	"azload-e2e/common/checks"
	"azload-e2e/common/e2etest"
	"azload-e2e/common/loadtest"

	"github.com/go-openapi/swag"
	. "github.com/onsi/gomega"
)

// update applies opts and checks the update output and a subsequent show
// against the expected description and display name.
func update(tc *e2etest.Case, opts loadtest.UpdateOptions, description, displayName string) {
	expected := checks.PassChecks(
		checks.JMESPathCheck("description", description),
		checks.JMESPathCheck("displayName", displayName),
	)
	run, err := tc.Client.UpdateTestRun(tc.Context(), tc.TestRunID, opts)
	Expect(err).ToNot(HaveOccurred(), "failed to update test run %s", tc.TestRunID)
	Expect(run.Raw).To(expected)

	shown := tc.ShowTestRun()
	Expect(shown.Raw).To(expected)
}

func (c *updateConfig) updateBoth(tc *e2etest.Case) {
	update(tc, loadtest.UpdateOptions{
		Description: swag.String(c.description1),
		DisplayName: swag.String(c.displayName1),
	}, c.description1, c.displayName1)
}

func (c *updateConfig) updateDisplayNameOnly(tc *e2etest.Case) {
	update(tc, loadtest.UpdateOptions{
		DisplayName: swag.String(c.displayName2),
	}, c.description1, c.displayName2)
}

func (c *updateConfig) updateDescriptionOnly(tc *e2etest.Case) {
	update(tc, loadtest.UpdateOptions{
		Description: swag.String(c.description2),
	}, c.description2, c.displayName2)
}
