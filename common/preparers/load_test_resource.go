package preparers

import (
	"context"

	"azload-e2e/common/azcli"

	"github.com/pkg/errors"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	DefaultLoadTestResourcePrefix = "clitest-load-"
	DefaultLoadTestResourceLength = 30
)

type LoadTestResource struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	ResourceGroup string `json:"resourceGroup"`
	DataPlaneURI  string `json:"dataPlaneURI"`
}

// LoadTestResourceBuilder enables building and creating an Azure Load Testing resource.
type LoadTestResourceBuilder struct {
	res    LoadTestResource
	prefix string
	length int
	errs   []error
}

func NewLoadTestResourceBuilder() *LoadTestResourceBuilder {
	return &LoadTestResourceBuilder{
		res:    LoadTestResource{Location: DefaultLocation},
		prefix: DefaultLoadTestResourcePrefix,
		length: DefaultLoadTestResourceLength,
	}
}

func (b *LoadTestResourceBuilder) WithName(name string) *LoadTestResourceBuilder {
	if name == "" {
		b.errs = append(b.errs, errors.New("failed to build load test resource: missing name"))
		return b
	}
	b.res.Name = name
	return b
}

func (b *LoadTestResourceBuilder) WithRandomName(prefix string, length int) *LoadTestResourceBuilder {
	if length <= len(prefix) {
		b.errs = append(b.errs, errors.Errorf("failed to build load test resource: name length %d does not exceed prefix %q", length, prefix))
		return b
	}
	b.prefix = prefix
	b.length = length
	return b
}

func (b *LoadTestResourceBuilder) WithResourceGroup(rg string) *LoadTestResourceBuilder {
	if rg == "" {
		b.errs = append(b.errs, errors.New("failed to build load test resource: missing resource group"))
		return b
	}
	b.res.ResourceGroup = rg
	return b
}

func (b *LoadTestResourceBuilder) WithLocation(location string) *LoadTestResourceBuilder {
	if location == "" {
		b.errs = append(b.errs, errors.New("failed to build load test resource: missing location"))
		return b
	}
	b.res.Location = location
	return b
}

func (b *LoadTestResourceBuilder) Build() (*LoadTestResource, error) {
	if b.res.ResourceGroup == "" {
		b.errs = append(b.errs, errors.New("failed to build load test resource: missing resource group"))
	}
	if len(b.errs) > 0 {
		return nil, errors.Errorf("%+v", b.errs)
	}
	res := b.res
	if res.Name == "" {
		res.Name = RandomName(b.prefix, b.length)
	}
	return &res, nil
}

// BuildAndCreate builds the resource and creates it with az load create.
func (b *LoadTestResourceBuilder) BuildAndCreate(ctx context.Context, az azcli.Executor) (*LoadTestResource, error) {
	res, err := b.Build()
	if err != nil {
		return nil, err
	}
	logf.Log.Info("Creating load test resource", "name", res.Name, "resourceGroup", res.ResourceGroup)
	args := azcli.Cmd("load", "create").
		Flag("name", res.Name).
		Flag("resource-group", res.ResourceGroup).
		Flag("location", res.Location)
	out, err := az.Run(ctx, args.Strings()...)
	if err != nil {
		return nil, errors.Wrapf(err, "creating load test resource %s", res.Name)
	}
	var created LoadTestResource
	if err := out.JSON(&created); err != nil {
		return nil, err
	}
	if created.ResourceGroup == "" {
		created.ResourceGroup = res.ResourceGroup
	}
	return &created, nil
}

func DeleteLoadTestResource(ctx context.Context, az azcli.Executor, rg, name string) error {
	logf.Log.Info("Deleting load test resource", "name", name, "resourceGroup", rg)
	args := azcli.Cmd("load", "delete").
		Flag("name", name).
		Flag("resource-group", rg).
		Switch("yes", true)
	_, err := az.Run(ctx, args.Strings()...)
	return errors.Wrapf(err, "deleting load test resource %s", name)
}
