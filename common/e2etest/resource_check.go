package e2etest

import (
	"context"
	"fmt"
	"time"

	"azload-e2e/common"
	"azload-e2e/common/azcli"
	"azload-e2e/common/e2e_config"
	"azload-e2e/common/preparers"

	"github.com/pkg/errors"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// CheckForResourceGroups returns the resource groups tagged with runID
// that are not being deleted.
func CheckForResourceGroups(ctx context.Context, az azcli.Executor, runID string) ([]string, error) {
	groups, err := preparers.ListResourceGroups(ctx, az, common.TagRunID, runID)
	if err != nil {
		return nil, err
	}
	var live []string
	for _, g := range groups {
		if !g.Deleting() {
			live = append(live, g.Name)
		}
	}
	return live, nil
}

// ResourceCheck  Fit for purpose checks
// - No resource group created by this run is left behind
// Skipped when resources are kept for post-mortem analysis.
func ResourceCheck() error {
	if e2e_config.GetConfig().KeepResources {
		logf.Log.Info("ResourceCheck: keepResources is set, skipping")
		return nil
	}
	env := Env()
	groups, err := CheckForResourceGroups(context.Background(), env.Az, env.RunID)
	if err != nil {
		return err
	}
	if len(groups) != 0 {
		return errors.Errorf("found resource groups %v", groups)
	}
	return nil
}

// BeforeEachCheck asserts that no resources of earlier specs are left.
func BeforeEachCheck() error {
	logf.Log.Info("BeforeEachCheck")
	err := ResourceCheck()
	if err != nil {
		logf.Log.Info("BeforeEachCheck failed", "error", err)
		err = fmt.Errorf("not running test case, subscription is not \"clean\"!!!\n%v", err)
	}
	return err
}

// AfterEachCheck asserts that the spec's resources have been removed.
func AfterEachCheck() error {
	logf.Log.Info("AfterEachCheck")
	err := ResourceCheck()
	if err != nil {
		logf.Log.Info("AfterEachCheck failed", "error", err)
	}
	return err
}

// StaleResourceGroups returns the suite's resource groups, from any run,
// created more than olderThan ago and not being deleted.
func StaleResourceGroups(olderThan time.Duration) ([]string, error) {
	env := Env()
	groups, err := preparers.ListResourceGroups(context.Background(), env.Az, "", "")
	if err != nil {
		return nil, err
	}
	prefix := e2e_config.GetConfig().Preparers.ResourceGroupPrefix
	now := time.Now()
	var stale []string
	for i := range groups {
		if preparers.Stale(&groups[i], prefix, olderThan, now) {
			stale = append(stale, groups[i].Name)
		}
	}
	return stale, nil
}
