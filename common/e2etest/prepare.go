package e2etest

import (
	"context"

	"azload-e2e/common/e2e_config"
	"azload-e2e/common/loadtest"
	"azload-e2e/common/preparers"

	. "github.com/onsi/gomega"
)

type prepareOptions struct {
	storageAccount bool
}

type PrepareOption func(*prepareOptions)

// WithStorageAccount also creates a storage account, the resource app
// components and server metrics refer to.
func WithStorageAccount() PrepareOption {
	return func(o *prepareOptions) {
		o.storageAccount = true
	}
}

// ForSpec returns the Case of a spec, running commands through the suite's
// az runner. Call Prepare on it to create its resources and Cleanup in
// AfterEach.
func ForSpec(testID, testRunID string) *Case {
	env := Env()
	return NewCase(env.Az, settingsFromConfig(env.RunID), testID, testRunID)
}

// Prepare creates the resource group and load test resource of the case
// with the configured preparers. Whatever was created before a failure is
// already on the cleanup stack.
func (c *Case) Prepare(opts ...PrepareOption) {
	var o prepareOptions
	for _, opt := range opts {
		opt(&o)
	}
	p := e2e_config.GetConfig().Preparers

	rg, err := preparers.NewResourceGroupBuilder().
		WithRandomName(p.ResourceGroupPrefix, p.ResourceGroupNameLength).
		WithLocation(c.settings.Location).
		WithRunID(c.settings.RunID).
		BuildAndCreate(c.ctx, c.az)
	Expect(err).ToNot(HaveOccurred(), "failed to create resource group")
	c.ResourceGroup = rg
	c.DeferResource("delete resource group "+rg.Name, func(ctx context.Context) error {
		return preparers.DeleteResourceGroup(ctx, c.az, rg.Name, p.ResourceGroupDeleteNoWait)
	})

	lt, err := preparers.NewLoadTestResourceBuilder().
		WithRandomName(p.LoadTestResourcePrefix, p.LoadTestResourceLength).
		WithResourceGroup(rg.Name).
		WithLocation(c.settings.Location).
		BuildAndCreate(c.ctx, c.az)
	Expect(err).ToNot(HaveOccurred(), "failed to create load test resource")
	c.LoadTestResource = lt
	c.DeferResource("delete load test resource "+lt.Name, func(ctx context.Context) error {
		return preparers.DeleteLoadTestResource(ctx, c.az, rg.Name, lt.Name)
	})
	c.Client = loadtest.NewClient(c.az, loadtest.Scope{ResourceGroup: rg.Name, LoadTestResource: lt.Name})

	if o.storageAccount {
		sa, err := preparers.NewStorageAccountBuilder().
			WithRandomName(p.StorageAccountPrefix, p.StorageAccountNameLength).
			WithResourceGroup(rg.Name).
			WithLocation(c.settings.Location).
			WithSku(p.StorageAccountSku).
			WithSharedKeyAccess(p.AllowSharedKeyAccess).
			BuildAndCreate(c.ctx, c.az)
		Expect(err).ToNot(HaveOccurred(), "failed to create storage account")
		c.StorageAccount = sa
		c.DeferResource("delete storage account "+sa.Name, func(ctx context.Context) error {
			return preparers.DeleteStorageAccount(ctx, c.az, rg.Name, sa.Name)
		})
	}
}
