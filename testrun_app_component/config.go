package testrun_app_component

import (
	"azload-e2e/common/e2e_config"
)

type appComponentConfig struct {
	settleDelay string
}

func generateAppComponentConfig() *appComponentConfig {
	return &appComponentConfig{
		settleDelay: e2e_config.GetConfig().AppComponent.SettleDelay,
	}
}
