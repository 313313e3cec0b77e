package testrun_update

import (
	"azload-e2e/common/e2e_config"
)

type updateConfig struct {
	settleDelay  string
	description1 string
	displayName1 string
	description2 string
	displayName2 string
}

func generateUpdateConfig() *updateConfig {
	params := e2e_config.GetConfig().TestRunUpdate
	return &updateConfig{
		settleDelay:  params.SettleDelay,
		description1: "Updated test run description1",
		displayName1: "TestRunDisplayNameUpdated1",
		description2: "Updated test run description2",
		displayName2: "TestRunDisplayNameUpdated2",
	}
}
