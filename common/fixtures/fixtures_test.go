package fixtures

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"azload-e2e/common"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v2"
)

var _ = Describe("Load test fixtures", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "fixtures-")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	readConfig := func(path string) LoadTestConfig {
		raw, err := ioutil.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		var cfg LoadTestConfig
		Expect(yaml.Unmarshal(raw, &cfg)).To(Succeed())
		return cfg
	}

	It("renders a single engine config next to the test plan", func() {
		files, err := Render(dir, common.FixtureStandard, Options{TestID: common.ShowTestID})
		Expect(err).ToNot(HaveOccurred())
		Expect(files.ConfigFile).To(Equal(filepath.Join(dir, "config.yaml")))
		Expect(files.TestPlan).To(BeAnExistingFile())

		cfg := readConfig(files.ConfigFile)
		Expect(cfg.TestPlan).To(Equal(TestPlanFile))
		Expect(cfg.TestID).To(Equal(common.ShowTestID))
		Expect(cfg.EngineInstances).To(Equal(1))
		Expect(cfg.RegionalLoadTestConfig).To(BeEmpty())
	})

	It("splits four engines across two regions", func() {
		files, err := Render(dir, common.FixtureRegional, Options{Location: "eastus"})
		Expect(err).ToNot(HaveOccurred())

		cfg := readConfig(files.ConfigFile)
		Expect(cfg.EngineInstances).To(Equal(4))
		Expect(cfg.RegionalLoadTestConfig).To(Equal([]RegionalEngine{
			{Region: "eastus", EngineInstances: 2},
			{Region: "westus2", EngineInstances: 2},
		}))
	})

	It("requires a location for a regional config", func() {
		_, err := Render(dir, common.FixtureRegional, Options{})
		Expect(err).To(HaveOccurred())
	})

	It("uses the configured engine count for high scale", func() {
		files, err := Render(dir, common.FixtureHighScale, Options{HighScaleEngineInstances: 10})
		Expect(err).ToNot(HaveOccurred())
		cfg := readConfig(files.ConfigFile)
		Expect(cfg.EngineInstances).To(Equal(10))
		Expect(cfg.SplitAllCSVs).To(BeTrue())

		_, err = Render(dir, common.FixtureHighScale, Options{HighScaleEngineInstances: 1})
		Expect(err).To(HaveOccurred())
	})

	It("embeds a test plan with the sampler the metric scenarios filter on", func() {
		Expect(string(TestPlanContent())).To(ContainSubstring(`testname="` + common.MetricDimensionValue + `"`))
		Expect(string(TestPlanContent())).To(ContainSubstring(`System.getenv(&quot;duration&quot;)`))
	})
})
