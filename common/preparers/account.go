package preparers

import (
	"context"

	"azload-e2e/common/azcli"

	"github.com/pkg/errors"
)

type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TenantID string `json:"tenantId"`
	User     struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"user"`
}

// ShowAccount returns the subscription the CLI is logged in to.
func ShowAccount(ctx context.Context, az azcli.Executor) (*Account, error) {
	out, err := az.RunCached(ctx, "account", "show")
	if err != nil {
		return nil, errors.Wrap(err, "showing account")
	}
	var acc Account
	if err := out.JSON(&acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// SetSubscription switches the CLI's default subscription.
func SetSubscription(ctx context.Context, az azcli.Executor, subscription string) error {
	_, err := az.Run(ctx, azcli.Cmd("account", "set").Flag("subscription", subscription).Strings()...)
	return errors.Wrapf(err, "setting subscription %s", subscription)
}
