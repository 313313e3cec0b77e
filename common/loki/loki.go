// Package loki pushes start-of-suite markers to Grafana Loki so that
// CLI and service logs can be lined up with test runs.
package loki

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"azload-e2e/common/e2e_config"

	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

const pushURL = "https://logs-prod-us-central1.grafana.net/loki/api/v1/push"

type settings struct {
	user    string
	pw      string
	runID   string
	enabled bool
}

var (
	gSettings settings
	gOnce     sync.Once
)

func readSettings() settings {
	s := settings{
		user:  os.Getenv("grafana_api_user"),
		pw:    os.Getenv("grafana_api_pw"),
		runID: os.Getenv("loki_run_id"),
	}
	if s.user != "" && s.pw != "" && s.runID != "" {
		s.enabled = true
	} else if s.user != "" || s.pw != "" || s.runID != "" { // all should be defined or none
		reason := "Invalid combination of environment variables"
		if s.user == "" {
			reason += ", user is not defined"
		}
		if s.pw == "" {
			reason += ", password is not defined"
		}
		if s.runID == "" {
			reason += ", loki_run_id is not defined"
		}
		logf.Log.Info("Invalid Loki config", "reason", reason)
	}
	return s
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

func markerBody(runID, config, location, text string, at time.Time) ([]byte, error) {
	return json.Marshal(pushRequest{Streams: []stream{{
		Stream: map[string]string{
			"run":      runID,
			"config":   config,
			"location": location,
			"app":      "marker",
		},
		Values: [][2]string{{strconv.FormatInt(at.UnixNano(), 10), text}},
	}}})
}

// SendLokiMarker pushes text as a marker line, it does nothing unless
// grafana_api_user, grafana_api_pw and loki_run_id are all set.
func SendLokiMarker(text string) {
	gOnce.Do(func() {
		gSettings = readSettings()
	})
	if !gSettings.enabled {
		return
	}

	cfg := e2e_config.GetConfig()
	body, err := markerBody(gSettings.runID, cfg.ConfigName, cfg.Location, text, time.Now())
	if err != nil {
		logf.Log.Info("Failed to encode Loki request", "error", err)
		return
	}
	req, err := http.NewRequest(http.MethodPost, pushURL, bytes.NewReader(body))
	if err != nil {
		logf.Log.Info("Failed to create Loki marker request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(gSettings.user, gSettings.pw)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		logf.Log.Info("Failed to send Loki marker", "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logf.Log.Info("Unexpected response from Grafana / Loki", "status code", resp.StatusCode)
	}
}
