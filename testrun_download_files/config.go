package testrun_download_files

import (
	"time"

	"azload-e2e/common/e2e_config"
	"azload-e2e/common/e2etest"
)

type downloadConfig struct {
	pollAttempts int
	pollInterval time.Duration
}

func generateDownloadConfig() *downloadConfig {
	params := e2e_config.GetConfig().DownloadFiles
	return &downloadConfig{
		pollAttempts: params.PollAttempts,
		pollInterval: e2etest.Duration(params.PollInterval),
	}
}
