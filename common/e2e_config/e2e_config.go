package e2e_config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"sync"

	"gopkg.in/yaml.v2"

	"github.com/ilyakaznacheev/cleanenv"
)

const ConfigDir = "/configurations"

// E2EConfig is a application configuration structure
type E2EConfig struct {
	ConfigName string `yaml:"configName" env-default:"default"`

	E2eRootDir string `yaml:"e2eRootDir" env:"e2e_root_dir"`
	// Path to the az executable, resolved through PATH when not absolute
	AzPath string `yaml:"azPath" env:"e2e_az_path" env-default:"az"`
	// Subscription to run against, empty means the CLI default subscription
	Subscription string `yaml:"subscription" env:"e2e_subscription"`
	Location     string `yaml:"location" env:"e2e_location" env-default:"eastus"`
	// Live enables the fixed waits used to let the service catch up
	// with asynchronous operations. Commands always reach the real
	// service; false only skips the waits when debugging locally, and
	// the stop, update and rerun specs are unreliable without them.
	Live bool `yaml:"live" env:"e2e_live" env-default:"true"`
	// LiveOnly enables scenarios which cannot be made deterministic,
	// stop, high scale download and artifacts url.
	LiveOnly bool `yaml:"liveOnly" env:"e2e_live_only" env-default:"false"`
	// KeepResources leaves resource groups in place after a spec, for post-mortem analysis.
	KeepResources bool `yaml:"keepResources" env:"e2e_keep_resources" env-default:"false"`
	// CommandTimeout bounds a single az invocation, test-run create blocks until the run completes.
	CommandTimeout string `yaml:"commandTimeout" env:"e2e_command_timeout" env-default:"45m"`
	// Resource groups with the suite prefix older than this are reported
	// by the resource_check suite and removed by the sweeper.
	StaleResourceAge string `yaml:"staleResourceAge" env-default:"3h"`
	// Lifetime of cached read-only lookups such as account show.
	LookupCacheTTL string `yaml:"lookupCacheTTL" env-default:"10m"`

	// Run configuration
	ReportsDir string `yaml:"reportsDir" env:"e2e_reports_dir"`

	Preparers struct {
		ResourceGroupPrefix       string `yaml:"resourceGroupPrefix" env-default:"clitest-load-"`
		ResourceGroupNameLength   int    `yaml:"resourceGroupNameLength" env-default:"30"`
		LoadTestResourcePrefix    string `yaml:"loadTestResourcePrefix" env-default:"clitest-load-"`
		LoadTestResourceLength    int    `yaml:"loadTestResourceLength" env-default:"30"`
		StorageAccountPrefix      string `yaml:"storageAccountPrefix" env-default:"clitestload"`
		StorageAccountNameLength  int    `yaml:"storageAccountNameLength" env-default:"20"`
		StorageAccountSku         string `yaml:"storageAccountSku" env-default:"Standard_LRS"`
		AllowSharedKeyAccess      bool   `yaml:"allowSharedKeyAccess" env-default:"false"`
		ResourceGroupDeleteNoWait bool   `yaml:"resourceGroupDeleteNoWait" env-default:"true"`
	} `yaml:"preparers"`

	// Individual Test parameters
	LongRun struct {
		// Duration units are seconds, passed to the test plan through the duration env var
		Duration int `yaml:"duration" env-default:"300"`
	} `yaml:"longRun"`
	TestRunStop struct {
		StartDelay  string `yaml:"startDelay" env-default:"20s"`
		SettleDelay string `yaml:"settleDelay" env-default:"20s"`
	} `yaml:"testRunStop"`
	TestRunUpdate struct {
		SettleDelay string `yaml:"settleDelay" env-default:"20s"`
	} `yaml:"testRunUpdate"`
	DownloadFiles struct {
		PollAttempts int    `yaml:"pollAttempts" env-default:"10"`
		PollInterval string `yaml:"pollInterval" env-default:"10s"`
		// Engine instances of the high scale test, its artifacts are downloaded as directories
		HighScaleEngineInstances int `yaml:"highScaleEngineInstances" env-default:"10"`
	} `yaml:"downloadFiles"`
	AppComponent struct {
		SettleDelay string `yaml:"settleDelay" env-default:"10s"`
	} `yaml:"appComponent"`
	ArtifactsURL struct {
		RerunStartDelay string `yaml:"rerunStartDelay" env-default:"20s"`
		StopSettleDelay string `yaml:"stopSettleDelay" env-default:"20s"`
	} `yaml:"artifactsUrl"`
}

var once sync.Once
var e2eConfig E2EConfig

// This function is called early from junit and various bits have not been initialised yet
// so we cannot use logf or Expect instead we use fmt.Print... and panic.
func GetConfig() E2EConfig {
	once.Do(func() {
		e2eConfig = loadConfig()
	})
	return e2eConfig
}

func loadConfig() E2EConfig {
	var cfg E2EConfig
	e2eRootDir, okE2eRootDir := os.LookupEnv("e2e_root_dir")

	// A configuration file *MUST* be specified,
	// - if it is an absolute path then that file is used as the config file
	// - else a file of the same name in the configuration directory is used
	value, ok := os.LookupEnv("e2e_config_file")
	if !ok {
		panic("configuration file not specified, use env var e2e_config_file")
	}
	configFile := value
	if !path.IsAbs(configFile) {
		configFile = path.Clean(e2eRootDir + ConfigDir + "/" + value)
	}
	fmt.Printf("Using configuration file %s\n", configFile)
	if err := cleanenv.ReadConfig(configFile, &cfg); err != nil {
		panic(fmt.Sprintf("%v", err))
	}

	// The environment variable overrides the configuration setting
	if okE2eRootDir {
		if cfg.E2eRootDir != "" && e2eRootDir != cfg.E2eRootDir {
			fmt.Printf("overriding configuration e2e root dir from %s to %s\n", cfg.E2eRootDir, e2eRootDir)
		}
		cfg.E2eRootDir = e2eRootDir
	}
	if cfg.E2eRootDir == "" {
		panic("E2E root directory is not specified.")
	}
	if cfg.DownloadFiles.PollAttempts < 1 {
		panic(fmt.Sprintf("invalid downloadFiles.pollAttempts %d", cfg.DownloadFiles.PollAttempts))
	}

	cfgBytes, _ := yaml.Marshal(cfg)
	cfgUsedFile := path.Clean(cfg.E2eRootDir + "/artifacts/used-" + cfg.ConfigName + ".yaml")
	if err := ioutil.WriteFile(cfgUsedFile, cfgBytes, 0644); err == nil {
		fmt.Printf("Resolved config written to %s\n", cfgUsedFile)
	}
	return cfg
}
