package testrun_stop

import (
	"time"

	"azload-e2e/common/e2e_config"
)

type stopConfig struct {
	startDelay  string
	settleDelay string
	// longRun is how long the test plan runs when nothing stops it.
	longRun time.Duration
}

func generateStopConfig() *stopConfig {
	cfg := e2e_config.GetConfig()
	return &stopConfig{
		startDelay:  cfg.TestRunStop.StartDelay,
		settleDelay: cfg.TestRunStop.SettleDelay,
		longRun:     time.Duration(cfg.LongRun.Duration) * time.Second,
	}
}
