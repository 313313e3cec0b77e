package e2etest

import (
	"context"

	"azload-e2e/common/azcli"
	"azload-e2e/common/e2e_config"
	"azload-e2e/common/fixtures"
	"azload-e2e/common/loadtest"
	"azload-e2e/common/locations"
	"azload-e2e/common/preparers"

	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

type cleanup struct {
	name string
	// resource cleanups delete Azure resources and are skipped when
	// resources are kept
	resource bool
	fn       func(ctx context.Context) error
}

// Settings are the parts of the configuration a Case needs.
type Settings struct {
	// RunID tags the resource groups created by the suite run.
	RunID         string
	KeepResources bool
	// LongRunDuration is the test plan duration, in seconds, of long tests.
	LongRunDuration          int
	Location                 string
	HighScaleEngineInstances int
	FixturesDir              string
}

// Case carries the resources and identifiers of one spec. Everything a
// spec creates is pushed on its cleanup stack, which Teardown unwinds in
// reverse order.
type Case struct {
	ctx      context.Context
	az       azcli.Executor
	settings Settings
	cleanups []cleanup
	tests    map[string]bool

	TestID    string
	TestRunID string

	ResourceGroup    *preparers.ResourceGroup
	LoadTestResource *preparers.LoadTestResource
	StorageAccount   *preparers.StorageAccount
	Client           *loadtest.Client
	// Fixture is the configuration the last test was created from.
	Fixture *fixtures.Files
}

// NewCase returns a case running commands through az.
func NewCase(az azcli.Executor, settings Settings, testID, testRunID string) *Case {
	return &Case{
		ctx:       context.Background(),
		az:        az,
		settings:  settings,
		tests:     map[string]bool{},
		TestID:    testID,
		TestRunID: testRunID,
	}
}

func settingsFromConfig(runID string) Settings {
	cfg := e2e_config.GetConfig()
	return Settings{
		RunID:                    runID,
		KeepResources:            cfg.KeepResources,
		LongRunDuration:          cfg.LongRun.Duration,
		Location:                 cfg.Location,
		HighScaleEngineInstances: cfg.DownloadFiles.HighScaleEngineInstances,
		FixturesDir:              locations.GetFixturesDir(),
	}
}

func (c *Case) Context() context.Context {
	return c.ctx
}

func (c *Case) Az() azcli.Executor {
	return c.az
}

// Defer pushes fn on the cleanup stack.
func (c *Case) Defer(name string, fn func(ctx context.Context) error) {
	c.cleanups = append(c.cleanups, cleanup{name: name, fn: fn})
}

// DeferResource pushes the deletion of an Azure resource on the cleanup
// stack, it is not run when resources are kept.
func (c *Case) DeferResource(name string, fn func(ctx context.Context) error) {
	c.cleanups = append(c.cleanups, cleanup{name: name, resource: true, fn: fn})
}

// Teardown runs the cleanup stack last in first out. A failing step does
// not stop the ones below it, all errors are returned.
func (c *Case) Teardown() []error {
	var errs []error
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		cl := c.cleanups[i]
		if cl.resource && c.settings.KeepResources {
			logf.Log.Info("Keeping resource", "cleanup", cl.name)
			continue
		}
		logf.Log.Info("Cleanup", "step", cl.name)
		if err := cl.fn(c.ctx); err != nil {
			logf.Log.Info("Cleanup failed", "step", cl.name, "error", err)
			errs = append(errs, errors.Wrap(err, cl.name))
		}
	}
	c.cleanups = nil
	return errs
}

// Cleanup is Teardown for AfterEach, it fails the spec if any step failed.
func (c *Case) Cleanup() {
	errs := c.Teardown()
	Expect(errs).To(BeEmpty(), "cleanup failed")
}
