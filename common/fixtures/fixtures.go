// Package fixtures renders the load test configuration files and the
// JMeter test plan that tests are created from.
package fixtures

import (
	_ "embed"
	"io/ioutil"
	"os"
	"path/filepath"

	"azload-e2e/common"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	TestPlanFile   = "sample-JMX-file.jmx"
	ConfigVersion  = "v0.1"
	TestTypeJMX    = "JMX"
	configFileName = "config.yaml"
)

//go:embed testplan/sample-JMX-file.jmx
var sampleJMX []byte

// LoadTestConfig is the YAML document accepted by --load-test-config-file.
type LoadTestConfig struct {
	Version                string           `yaml:"version"`
	TestID                 string           `yaml:"testId,omitempty"`
	DisplayName            string           `yaml:"displayName,omitempty"`
	Description            string           `yaml:"description,omitempty"`
	TestPlan               string           `yaml:"testPlan"`
	TestType               string           `yaml:"testType"`
	EngineInstances        int              `yaml:"engineInstances"`
	FailureCriteria        []string         `yaml:"failureCriteria,omitempty"`
	AutoStop               string           `yaml:"autoStop,omitempty"`
	SplitAllCSVs           bool             `yaml:"splitAllCSVs,omitempty"`
	Env                    []EnvVar         `yaml:"env,omitempty"`
	RegionalLoadTestConfig []RegionalEngine `yaml:"regionalLoadTestConfig,omitempty"`
}

type EnvVar struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type RegionalEngine struct {
	Region          string `yaml:"region"`
	EngineInstances int    `yaml:"engineInstances"`
}

// Options parameterise Render.
type Options struct {
	TestID string
	// Location of the load test resource, the first regional engine pool runs there.
	Location string
	// SecondaryRegion hosts the other half of the engines of a regional test.
	SecondaryRegion string
	// HighScaleEngineInstances is the engine count of FixtureHighScale.
	HighScaleEngineInstances int
}

// Files are the paths of a rendered fixture.
type Files struct {
	Dir        string
	ConfigFile string
	TestPlan   string
	Config     LoadTestConfig
}

// Config builds the configuration of the given kind.
func Config(kind common.FixtureKind, opts Options) (LoadTestConfig, error) {
	cfg := LoadTestConfig{
		Version:         ConfigVersion,
		TestID:          opts.TestID,
		DisplayName:     opts.TestID,
		Description:     "azload-e2e " + kind.String() + " test",
		TestPlan:        TestPlanFile,
		TestType:        TestTypeJMX,
		EngineInstances: 1,
		FailureCriteria: []string{
			"avg(response_time_ms) > 30000",
			"percentage(error) > 90",
		},
		AutoStop: "disable",
		Env: []EnvVar{
			{Name: common.DefaultEnvironmentVariable, Value: "1"},
		},
	}
	switch kind {
	case common.FixtureStandard:
	case common.FixtureRegional:
		if opts.Location == "" {
			return cfg, errors.New("regional fixture requires a location")
		}
		secondary := opts.SecondaryRegion
		if secondary == "" {
			secondary = "westus2"
		}
		cfg.EngineInstances = 4
		cfg.RegionalLoadTestConfig = []RegionalEngine{
			{Region: opts.Location, EngineInstances: 2},
			{Region: secondary, EngineInstances: 2},
		}
	case common.FixtureHighScale:
		if opts.HighScaleEngineInstances < 2 {
			return cfg, errors.Errorf("high scale fixture requires at least 2 engines, got %d", opts.HighScaleEngineInstances)
		}
		cfg.EngineInstances = opts.HighScaleEngineInstances
		cfg.SplitAllCSVs = true
	default:
		return cfg, errors.Errorf("unknown fixture kind %d", kind)
	}
	return cfg, nil
}

// Render writes the configuration of the given kind and the test plan
// it references into dir.
func Render(dir string, kind common.FixtureKind, opts Options) (*Files, error) {
	cfg, err := Config(kind, opts)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating fixture dir %s", dir)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "encoding load test config")
	}
	files := &Files{
		Dir:        dir,
		ConfigFile: filepath.Join(dir, configFileName),
		TestPlan:   filepath.Join(dir, TestPlanFile),
		Config:     cfg,
	}
	if err := ioutil.WriteFile(files.ConfigFile, out, 0644); err != nil {
		return nil, errors.Wrapf(err, "writing %s", files.ConfigFile)
	}
	if err := ioutil.WriteFile(files.TestPlan, sampleJMX, 0644); err != nil {
		return nil, errors.Wrapf(err, "writing %s", files.TestPlan)
	}
	return files, nil
}

// TestPlanContent returns the embedded JMeter test plan.
func TestPlanContent() []byte {
	return sampleJMX
}
