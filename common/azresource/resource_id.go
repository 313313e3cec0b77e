// Package azresource parses Azure Resource Manager identifiers and
// validates the identifiers the load CLI accepts.
package azresource

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var testRunIDPattern = regexp.MustCompile(`^[a-z0-9_-]{2,50}$`)

// ID is a parsed resource identifier of the form
// /subscriptions/{sub}/resourceGroups/{rg}/providers/{namespace}/{type}/{name}[/{type}/{name}...]
// Extension resources such as metric definitions appear as a trailing
// /providers/... section, Parent then holds the identifier they extend.
type ID struct {
	Raw            string
	SubscriptionID string
	ResourceGroup  string
	Namespace      string
	Types          []string
	Names          []string
	Parent         string
}

// Parse splits id into its components.
func Parse(id string) (*ID, error) {
	trimmed := strings.Trim(id, "/")
	if !strings.HasPrefix(id, "/") || trimmed == "" {
		return nil, errors.Errorf("%q: resource id must start with /subscriptions/", id)
	}
	segs := strings.Split(trimmed, "/")
	if len(segs)%2 != 0 {
		return nil, errors.Errorf("%q: odd number of path segments", id)
	}

	r := &ID{Raw: id}
	for i := 0; i < len(segs); i += 2 {
		key, value := segs[i], segs[i+1]
		if value == "" {
			return nil, errors.Errorf("%q: empty value for %s", id, key)
		}
		switch {
		case i == 0:
			if !strings.EqualFold(key, "subscriptions") {
				return nil, errors.Errorf("%q: resource id must start with /subscriptions/", id)
			}
			r.SubscriptionID = value
		case strings.EqualFold(key, "resourceGroups") && r.Namespace == "":
			r.ResourceGroup = value
		case strings.EqualFold(key, "providers"):
			if r.Namespace != "" {
				r.Parent = "/" + strings.Join(segs[:i], "/")
			}
			r.Namespace = value
			r.Types = nil
			r.Names = nil
		case r.Namespace != "":
			r.Types = append(r.Types, key)
			r.Names = append(r.Names, value)
		default:
			return nil, errors.Errorf("%q: unexpected segment %q", id, key)
		}
	}
	if r.ResourceGroup == "" {
		return nil, errors.Errorf("%q: missing resource group", id)
	}
	if r.Namespace == "" || len(r.Types) == 0 {
		return nil, errors.Errorf("%q: missing provider resource type", id)
	}
	return r, nil
}

// Type is the full resource type, e.g. Microsoft.Storage/storageAccounts.
func (r *ID) Type() string {
	return r.Namespace + "/" + strings.Join(r.Types, "/")
}

// Name is the name of the innermost resource.
func (r *ID) Name() string {
	return r.Names[len(r.Names)-1]
}

func (r *ID) String() string {
	return r.Raw
}

// IsValid reports whether id parses as a resource identifier.
func IsValid(id string) bool {
	_, err := Parse(id)
	return err == nil
}

// TypeMatches reports whether id names a resource of resourceType,
// resource types compare case insensitively.
func TypeMatches(id, resourceType string) (bool, error) {
	r, err := Parse(id)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(r.Type(), strings.Trim(resourceType, "/")), nil
}

// ValidateTestRunID checks the identifier format the service accepts for
// tests and test runs: 2 to 50 lowercase letters, digits, '_' or '-'.
func ValidateTestRunID(id string) error {
	if !testRunIDPattern.MatchString(id) {
		return fmt.Errorf("invalid test run id %q: must match %s", id, testRunIDPattern.String())
	}
	return nil
}

// MetricDefinitionID is the identifier of the named platform metric of a resource.
func MetricDefinitionID(resourceID, metricName string) string {
	return strings.TrimRight(resourceID, "/") + "/providers/microsoft.insights/metricdefinitions/" + metricName
}
