// Package checks provides gomega matchers over the JSON printed by az.
package checks

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/jmespath/go-jmespath"
	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
	"github.com/pkg/errors"
)

// Check is one JMESPath expression and the value it must evaluate to.
type Check struct {
	Query    string
	Expected interface{}
}

// JMESPathCheck builds a Check, expected is compared after a JSON round trip
// so that Go ints match JSON numbers.
func JMESPathCheck(query string, expected interface{}) Check {
	return Check{Query: query, Expected: expected}
}

// Evaluate runs the check against a JSON document.
func (c Check) Evaluate(doc []byte) error {
	var data interface{}
	if err := json.Unmarshal(doc, &data); err != nil {
		return errors.Wrap(err, "decoding document")
	}
	actual, err := jmespath.Search(c.Query, data)
	if err != nil {
		return errors.Wrapf(err, "query %q", c.Query)
	}
	expected, err := normalise(c.Expected)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(actual, expected) {
		return fmt.Errorf("query %q: actual %s, expected %s", c.Query, render(actual), render(expected))
	}
	return nil
}

func normalise(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding expected value")
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, errors.Wrap(err, "decoding expected value")
	}
	return out, nil
}

func render(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// PassChecks succeeds when every check passes against the actual document,
// which may be a []byte, a string or json.RawMessage.
func PassChecks(checks ...Check) types.GomegaMatcher {
	return &jmespathMatcher{checks: checks}
}

// MatchJMESPath is PassChecks with a single check.
func MatchJMESPath(query string, expected interface{}) types.GomegaMatcher {
	return PassChecks(JMESPathCheck(query, expected))
}

type jmespathMatcher struct {
	checks   []Check
	failures []error
}

func (m *jmespathMatcher) Match(actual interface{}) (bool, error) {
	var doc []byte
	switch v := actual.(type) {
	case []byte:
		doc = v
	case json.RawMessage:
		doc = v
	case string:
		doc = []byte(v)
	default:
		return false, fmt.Errorf("JMESPath matcher expects []byte or string, got %s", format.Object(actual, 1))
	}
	m.failures = nil
	for _, c := range m.checks {
		if err := c.Evaluate(doc); err != nil {
			m.failures = append(m.failures, err)
		}
	}
	return len(m.failures) == 0, nil
}

func (m *jmespathMatcher) FailureMessage(actual interface{}) string {
	msg := "Expected JSON document to satisfy JMESPath checks:"
	for _, f := range m.failures {
		msg += "\n\t" + f.Error()
	}
	return msg
}

func (m *jmespathMatcher) NegatedFailureMessage(actual interface{}) string {
	return fmt.Sprintf("Expected JSON document not to satisfy %d JMESPath checks", len(m.checks))
}
