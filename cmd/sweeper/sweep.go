package main

import (
	"context"
	"time"

	"azload-e2e/common/azcli"
	"azload-e2e/common/preparers"

	"github.com/pkg/errors"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// sweep deletes the stale suite resource groups and returns their names.
// In a dry run the names are returned without deleting anything. Failed
// deletes do not stop the sweep, the first error is returned at the end.
func sweep(ctx context.Context, az azcli.Executor, opts options, now time.Time) ([]string, error) {
	groups, err := preparers.ListResourceGroups(ctx, az, "", "")
	if err != nil {
		return nil, err
	}
	var (
		swept    []string
		firstErr error
	)
	for i := range groups {
		g := &groups[i]
		if !preparers.Stale(g, opts.Prefix, opts.OlderThan, now) {
			continue
		}
		created, _ := g.CreatedAt()
		logf.Log.Info("Stale resource group", "name", g.Name, "created", created, "dryRun", opts.DryRun)
		if opts.DryRun {
			swept = append(swept, g.Name)
			continue
		}
		if err := preparers.DeleteResourceGroup(ctx, az, g.Name, !opts.Wait); err != nil {
			logf.Log.Info("Delete failed", "name", g.Name, "error", err)
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "sweeping %s", g.Name)
			}
			continue
		}
		swept = append(swept, g.Name)
	}
	return swept, firstErr
}
