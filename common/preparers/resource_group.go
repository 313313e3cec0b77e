// Package preparers creates the Azure resources scenarios run against.
package preparers

import (
	"context"
	"strings"
	"time"

	"azload-e2e/common"
	"azload-e2e/common/azcli"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/rand"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	DefaultResourceGroupPrefix = "clitest-load-"
	DefaultResourceGroupLength = 30
	DefaultLocation            = "eastus"
)

type ResourceGroup struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Location   string            `json:"location"`
	Tags       map[string]string `json:"tags"`
	Properties struct {
		ProvisioningState string `json:"provisioningState"`
	} `json:"properties"`
}

// Deleting reports whether a delete has already been accepted for the group.
func (rg *ResourceGroup) Deleting() bool {
	return strings.EqualFold(rg.Properties.ProvisioningState, "Deleting")
}

// CreatedAt returns the creation time recorded in the group's tags.
func (rg *ResourceGroup) CreatedAt() (time.Time, bool) {
	v, ok := rg.Tags[common.TagCreated]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RandomName returns prefix followed by random characters, length long in total.
// The alphabet is lower case letters and digits, valid for every resource
// type used here including storage accounts.
func RandomName(prefix string, length int) string {
	n := length - len(prefix)
	if n < 1 {
		n = 1
	}
	return prefix + rand.String(n)
}

// ResourceGroupBuilder enables building and creating a resource group.
type ResourceGroupBuilder struct {
	rg     ResourceGroup
	prefix string
	length int
	errs   []error
}

// NewResourceGroupBuilder returns a builder with the default name prefix and location.
func NewResourceGroupBuilder() *ResourceGroupBuilder {
	return &ResourceGroupBuilder{
		rg:     ResourceGroup{Location: DefaultLocation, Tags: map[string]string{}},
		prefix: DefaultResourceGroupPrefix,
		length: DefaultResourceGroupLength,
	}
}

// WithName sets a fixed name instead of a random one.
func (b *ResourceGroupBuilder) WithName(name string) *ResourceGroupBuilder {
	if name == "" {
		b.errs = append(b.errs, errors.New("failed to build resource group: missing name"))
		return b
	}
	b.rg.Name = name
	return b
}

func (b *ResourceGroupBuilder) WithRandomName(prefix string, length int) *ResourceGroupBuilder {
	if length <= len(prefix) {
		b.errs = append(b.errs, errors.Errorf("failed to build resource group: name length %d does not exceed prefix %q", length, prefix))
		return b
	}
	b.prefix = prefix
	b.length = length
	return b
}

func (b *ResourceGroupBuilder) WithLocation(location string) *ResourceGroupBuilder {
	if location == "" {
		b.errs = append(b.errs, errors.New("failed to build resource group: missing location"))
		return b
	}
	b.rg.Location = location
	return b
}

func (b *ResourceGroupBuilder) WithTag(key, value string) *ResourceGroupBuilder {
	b.rg.Tags[key] = value
	return b
}

// WithRunID tags the group with the suite run id and the creation time,
// the resource check and the sweeper find leaked groups through them.
func (b *ResourceGroupBuilder) WithRunID(runID string) *ResourceGroupBuilder {
	b.rg.Tags[common.TagRunID] = runID
	b.rg.Tags[common.TagCreated] = time.Now().UTC().Format(time.RFC3339)
	return b
}

// Build returns the resource group description.
func (b *ResourceGroupBuilder) Build() (*ResourceGroup, error) {
	if len(b.errs) > 0 {
		return nil, errors.Errorf("%+v", b.errs)
	}
	rg := b.rg
	if rg.Name == "" {
		rg.Name = RandomName(b.prefix, b.length)
	}
	return &rg, nil
}

// BuildAndCreate builds the resource group and creates it with az group create.
func (b *ResourceGroupBuilder) BuildAndCreate(ctx context.Context, az azcli.Executor) (*ResourceGroup, error) {
	rg, err := b.Build()
	if err != nil {
		return nil, err
	}
	logf.Log.Info("Creating resource group", "name", rg.Name, "location", rg.Location)
	args := azcli.Cmd("group", "create").
		Flag("name", rg.Name).
		Flag("location", rg.Location).
		Pairs("tags", rg.Tags)
	res, err := az.Run(ctx, args.Strings()...)
	if err != nil {
		return nil, errors.Wrapf(err, "creating resource group %s", rg.Name)
	}
	var created ResourceGroup
	if err := res.JSON(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteResourceGroup deletes the group and everything in it. With noWait
// the CLI returns once the delete is accepted.
func DeleteResourceGroup(ctx context.Context, az azcli.Executor, name string, noWait bool) error {
	logf.Log.Info("Deleting resource group", "name", name, "noWait", noWait)
	args := azcli.Cmd("group", "delete").
		Flag("name", name).
		Switch("yes", true).
		Switch("no-wait", noWait)
	_, err := az.Run(ctx, args.Strings()...)
	return errors.Wrapf(err, "deleting resource group %s", name)
}

// ListResourceGroups lists resource groups, restricted to those carrying
// the tag key=value when key is not empty.
func ListResourceGroups(ctx context.Context, az azcli.Executor, key, value string) ([]ResourceGroup, error) {
	args := azcli.Cmd("group", "list")
	if key != "" {
		args = args.Flag("tag", key+"="+value)
	}
	res, err := az.Run(ctx, args.Strings()...)
	if err != nil {
		return nil, errors.Wrap(err, "listing resource groups")
	}
	var groups []ResourceGroup
	if err := res.JSON(&groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Stale reports whether rg was created by this suite, with the given name
// prefix, more than olderThan before now. Groups without a creation tag
// are never stale.
func Stale(rg *ResourceGroup, prefix string, olderThan time.Duration, now time.Time) bool {
	if !strings.HasPrefix(rg.Name, prefix) || rg.Deleting() {
		return false
	}
	created, ok := rg.CreatedAt()
	if !ok {
		return false
	}
	return now.Sub(created) > olderThan
}
