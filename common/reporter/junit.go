package reporter

import (
	"path"

	"azload-e2e/common/e2e_config"

	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/reporters"
)

const testGroupPrefix = "azload-e2e."

// GetReporters returns a JUnit reporter writing <reportsDir>/azload-e2e.<name>-junit.xml,
// or none when no reports directory is configured.
func GetReporters(name string) []Reporter {
	cfg := e2e_config.GetConfig()

	if cfg.ReportsDir == "" {
		return []Reporter{}
	}
	return []Reporter{reporters.NewJUnitReporter(ReportFile(cfg.ReportsDir, name))}
}

func ReportFile(dir, name string) string {
	return path.Join(dir, testGroupPrefix+name+"-junit.xml")
}
