package locations

// Directories under the e2e root, the relative paths are fixed.

import (
	"os"
	"path"

	"azload-e2e/common/e2e_config"

	. "github.com/onsi/gomega"
)

func locationExists(path string) string {
	_, err := os.Stat(path)
	Expect(err).To(BeNil(), "%s", err)
	return path
}

func GetArtifactsDir() string {
	return locationExists(path.Clean(e2e_config.GetConfig().E2eRootDir + "/artifacts"))
}

// This is a generated directory, so may not exist yet.
func GetDownloadsDir() string {
	return path.Clean(e2e_config.GetConfig().E2eRootDir + "/artifacts/downloads")
}

// This is a generated directory, so may not exist yet.
func GetFixturesDir() string {
	return path.Clean(e2e_config.GetConfig().E2eRootDir + "/artifacts/fixtures")
}
