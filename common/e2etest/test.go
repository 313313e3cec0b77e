// Package e2etest holds the suite lifecycle shared by the scenario
// packages and the per-spec Case on which test resources are created.
package e2etest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"azload-e2e/common/azcli"
	"azload-e2e/common/e2e_config"
	"azload-e2e/common/locations"
	"azload-e2e/common/loki"
	"azload-e2e/common/preparers"
	"azload-e2e/common/reporter"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

type TestEnvironment struct {
	Az             *azcli.Runner
	RunID          string
	SubscriptionID string
	AzVersion      map[string]interface{}
}

var gTestEnv TestEnvironment

// InitTesting initialise testing and setup class name + report filename.
func InitTesting(t *testing.T, classname string, reportname string) {
	RegisterFailHandler(Fail)
	fmt.Printf("Load tests run in location \"%s\"\n", e2e_config.GetConfig().Location)
	RunSpecsWithDefaultAndCustomReporters(t, classname, reporter.GetReporters(reportname))
	loki.SendLokiMarker("Start of test " + classname)
}

func SetupTestEnv() {
	logf.SetLogger(zap.New(zap.UseDevMode(true), zap.WriteTo(GinkgoWriter)))
	cfg := e2e_config.GetConfig()

	By("bootstrapping test environment")
	commandTimeout := Duration(cfg.CommandTimeout)
	cacheTTL := Duration(cfg.LookupCacheTTL)
	az := azcli.NewRunner(cfg.AzPath, azcli.WithTimeout(commandTimeout), azcli.WithCacheTTL(cacheTTL))

	ctx := context.Background()
	res, err := az.Run(ctx, "version")
	Expect(err).ToNot(HaveOccurred(), "az is not usable, azPath %s", cfg.AzPath)
	var version map[string]interface{}
	Expect(res.JSON(&version)).To(Succeed())
	Expect(version).To(HaveKey("extensions"), "az version does not list extensions")
	logf.Log.Info("az version", "azure-cli", version["azure-cli"], "extensions", version["extensions"])

	if cfg.Subscription != "" {
		Expect(preparers.SetSubscription(ctx, az, cfg.Subscription)).To(Succeed())
	}
	account, err := preparers.ShowAccount(ctx, az)
	Expect(err).ToNot(HaveOccurred(), "az is not logged in")

	logf.Log.Info("Artifacts", "dir", locations.GetArtifactsDir())
	Expect(os.MkdirAll(locations.GetDownloadsDir(), 0755)).To(Succeed())
	Expect(os.MkdirAll(locations.GetFixturesDir(), 0755)).To(Succeed())

	gTestEnv = TestEnvironment{
		Az:             az,
		RunID:          uuid.New().String(),
		SubscriptionID: account.ID,
		AzVersion:      version,
	}
	logf.Log.Info("Test environment", "runId", gTestEnv.RunID, "subscription", account.ID, "location", cfg.Location)
}

func TeardownTestEnv() {
	AfterSuiteCleanup()
	if gTestEnv.Az != nil {
		gTestEnv.Az.Forget()
	}
}

// AfterSuiteCleanup removes nothing, each Case deletes its own resources.
// Leaked groups are reported by ResourceCheck and removed by the sweeper.
func AfterSuiteCleanup() {
	logf.Log.Info("AfterSuiteCleanup", "runId", gTestEnv.RunID)
}

// Env returns the environment set up by SetupTestEnv.
func Env() *TestEnvironment {
	Expect(gTestEnv.Az).ToNot(BeNil(), "SetupTestEnv has not been called")
	return &gTestEnv
}

// Duration parses a duration from the configuration and fails the spec if it is malformed.
func Duration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	Expect(err).ToNot(HaveOccurred(), "duration configuration string format %q is invalid", value)
	return d
}

// LiveSleep waits for the service to catch up with an asynchronous
// operation. It does nothing when live is switched off, which is only
// meant for local debugging.
func LiveSleep(value string) {
	if !e2e_config.GetConfig().Live {
		return
	}
	d := Duration(value)
	logf.Log.Info("Waiting", "duration", d)
	time.Sleep(d)
}

// SkipUnlessLiveOnly skips scenarios that only run against live services.
func SkipUnlessLiveOnly(what string) {
	if !e2e_config.GetConfig().LiveOnly {
		Skip(what + " runs only when liveOnly is configured")
	}
}
