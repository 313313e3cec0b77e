package preparers

import (
	"context"
	"strconv"

	"azload-e2e/common/azcli"

	"github.com/pkg/errors"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	DefaultStorageAccountPrefix = "clitestload"
	DefaultStorageAccountLength = 20
	DefaultStorageAccountSku    = "Standard_LRS"
	// Storage account names are limited to 24 characters.
	maxStorageAccountLength = 24
)

type StorageAccount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	ResourceGroup string `json:"resourceGroup"`
	Kind          string `json:"kind"`
	Type          string `json:"type"`
}

// StorageAccountBuilder enables building and creating a storage account,
// the app component scenarios attach it to a test run.
type StorageAccountBuilder struct {
	sa                   StorageAccount
	sku                  string
	allowSharedKeyAccess bool
	prefix               string
	length               int
	errs                 []error
}

func NewStorageAccountBuilder() *StorageAccountBuilder {
	return &StorageAccountBuilder{
		sa:     StorageAccount{Location: DefaultLocation},
		sku:    DefaultStorageAccountSku,
		prefix: DefaultStorageAccountPrefix,
		length: DefaultStorageAccountLength,
	}
}

func (b *StorageAccountBuilder) WithName(name string) *StorageAccountBuilder {
	if name == "" || len(name) > maxStorageAccountLength {
		b.errs = append(b.errs, errors.Errorf("failed to build storage account: invalid name %q", name))
		return b
	}
	b.sa.Name = name
	return b
}

func (b *StorageAccountBuilder) WithRandomName(prefix string, length int) *StorageAccountBuilder {
	if length <= len(prefix) || length > maxStorageAccountLength {
		b.errs = append(b.errs, errors.Errorf("failed to build storage account: invalid name length %d for prefix %q", length, prefix))
		return b
	}
	b.prefix = prefix
	b.length = length
	return b
}

func (b *StorageAccountBuilder) WithResourceGroup(rg string) *StorageAccountBuilder {
	if rg == "" {
		b.errs = append(b.errs, errors.New("failed to build storage account: missing resource group"))
		return b
	}
	b.sa.ResourceGroup = rg
	return b
}

func (b *StorageAccountBuilder) WithLocation(location string) *StorageAccountBuilder {
	if location == "" {
		b.errs = append(b.errs, errors.New("failed to build storage account: missing location"))
		return b
	}
	b.sa.Location = location
	return b
}

func (b *StorageAccountBuilder) WithSku(sku string) *StorageAccountBuilder {
	if sku == "" {
		b.errs = append(b.errs, errors.New("failed to build storage account: missing sku"))
		return b
	}
	b.sku = sku
	return b
}

func (b *StorageAccountBuilder) WithSharedKeyAccess(allow bool) *StorageAccountBuilder {
	b.allowSharedKeyAccess = allow
	return b
}

func (b *StorageAccountBuilder) Build() (*StorageAccount, error) {
	if b.sa.ResourceGroup == "" {
		b.errs = append(b.errs, errors.New("failed to build storage account: missing resource group"))
	}
	if len(b.errs) > 0 {
		return nil, errors.Errorf("%+v", b.errs)
	}
	sa := b.sa
	if sa.Name == "" {
		sa.Name = RandomName(b.prefix, b.length)
	}
	return &sa, nil
}

// BuildAndCreate builds the account and creates it with az storage account create.
func (b *StorageAccountBuilder) BuildAndCreate(ctx context.Context, az azcli.Executor) (*StorageAccount, error) {
	sa, err := b.Build()
	if err != nil {
		return nil, err
	}
	logf.Log.Info("Creating storage account", "name", sa.Name, "resourceGroup", sa.ResourceGroup, "sku", b.sku)
	args := azcli.Cmd("storage", "account", "create").
		Flag("name", sa.Name).
		Flag("resource-group", sa.ResourceGroup).
		Flag("location", sa.Location).
		Flag("sku", b.sku).
		Flag("allow-shared-key-access", strconv.FormatBool(b.allowSharedKeyAccess))
	out, err := az.Run(ctx, args.Strings()...)
	if err != nil {
		return nil, errors.Wrapf(err, "creating storage account %s", sa.Name)
	}
	var created StorageAccount
	if err := out.JSON(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ShowStorageAccount looks the account up, results are cached by the executor.
func ShowStorageAccount(ctx context.Context, az azcli.Executor, rg, name string) (*StorageAccount, error) {
	args := azcli.Cmd("storage", "account", "show").
		Flag("name", name).
		Flag("resource-group", rg)
	out, err := az.RunCached(ctx, args.Strings()...)
	if err != nil {
		return nil, errors.Wrapf(err, "showing storage account %s", name)
	}
	var sa StorageAccount
	if err := out.JSON(&sa); err != nil {
		return nil, err
	}
	return &sa, nil
}

func DeleteStorageAccount(ctx context.Context, az azcli.Executor, rg, name string) error {
	logf.Log.Info("Deleting storage account", "name", name, "resourceGroup", rg)
	args := azcli.Cmd("storage", "account", "delete").
		Flag("name", name).
		Flag("resource-group", rg).
		Switch("yes", true)
	_, err := az.Run(ctx, args.Strings()...)
	return errors.Wrapf(err, "deleting storage account %s", name)
}
