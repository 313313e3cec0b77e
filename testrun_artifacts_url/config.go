package testrun_artifacts_url

import (
	"azload-e2e/common/e2e_config"
)

type artifactsURLConfig struct {
	rerunStartDelay string
	stopSettleDelay string
}

func generateArtifactsURLConfig() *artifactsURLConfig {
	params := e2e_config.GetConfig().ArtifactsURL
	return &artifactsURLConfig{
		rerunStartDelay: params.RerunStartDelay,
		stopSettleDelay: params.StopSettleDelay,
	}
}
