package loki

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"azload-e2e/common/checks"
)

func TestMarkerBody(t *testing.T) {
	at := time.Unix(0, 1715594400000000000)
	body, err := markerBody("run-7", "ci", "eastus", "Start of test TestRunCreate", at)
	require.NoError(t, err)

	for q, want := range map[string]interface{}{
		"streams[0].stream.run":    "run-7",
		"streams[0].stream.app":    "marker",
		"streams[0].stream.config": "ci",
		"streams[0].values[0][0]":  "1715594400000000000",
		"streams[0].values[0][1]":  "Start of test TestRunCreate",
	} {
		assert.NoError(t, checks.JMESPathCheck(q, want).Evaluate(body), q)
	}
}

func TestReadSettingsRequiresAll(t *testing.T) {
	t.Setenv("grafana_api_user", "u")
	t.Setenv("grafana_api_pw", "")
	t.Setenv("loki_run_id", "r")
	assert.False(t, readSettings().enabled)

	t.Setenv("grafana_api_pw", "p")
	assert.True(t, readSettings().enabled)
}
