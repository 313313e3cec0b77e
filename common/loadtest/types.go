package loadtest

import (
	"encoding/json"
	"time"

	"azload-e2e/common"

	"github.com/go-openapi/strfmt"
)

// Scope locates the load test resource commands run against.
type Scope struct {
	ResourceGroup    string
	LoadTestResource string
}

type LoadTestConfiguration struct {
	EngineInstances int  `json:"engineInstances"`
	SplitAllCSVs    bool `json:"splitAllCSVs"`
	QuickStartTest  bool `json:"quickStartTest"`
}

type Test struct {
	TestID                string                `json:"testId"`
	DisplayName           string                `json:"displayName"`
	Description           string                `json:"description"`
	Kind                  string                `json:"kind"`
	EnvironmentVariables  map[string]string     `json:"environmentVariables"`
	LoadTestConfiguration LoadTestConfiguration `json:"loadTestConfiguration"`
}

type FileInfo struct {
	FileName         string           `json:"fileName"`
	FileType         string           `json:"fileType"`
	URL              string           `json:"url"`
	ExpireDateTime   *strfmt.DateTime `json:"expireDateTime,omitempty"`
	ValidationStatus string           `json:"validationStatus"`
}

type InputArtifacts struct {
	ConfigFileInfo     *FileInfo  `json:"configFileInfo"`
	TestScriptFileInfo *FileInfo  `json:"testScriptFileInfo"`
	AdditionalFileInfo []FileInfo `json:"additionalFileInfo"`
}

type ArtifactsContainerInfo struct {
	URL            string           `json:"url"`
	ExpireDateTime *strfmt.DateTime `json:"expireDateTime,omitempty"`
}

type OutputArtifacts struct {
	LogsFileInfo           *FileInfo               `json:"logsFileInfo"`
	ReportFileInfo         *FileInfo               `json:"reportFileInfo"`
	ResultFileInfo         *FileInfo               `json:"resultFileInfo"`
	ArtifactsContainerInfo *ArtifactsContainerInfo `json:"artifactsContainerInfo"`
}

// Ready reports whether the logs and the report have been generated.
func (o *OutputArtifacts) Ready() bool {
	return o != nil && o.LogsFileInfo != nil && o.ReportFileInfo != nil
}

type TestArtifacts struct {
	InputArtifacts  *InputArtifacts  `json:"inputArtifacts"`
	OutputArtifacts *OutputArtifacts `json:"outputArtifacts"`
}

type TestRun struct {
	TestRunID             string                `json:"testRunId"`
	TestID                string                `json:"testId"`
	DisplayName           string                `json:"displayName"`
	Description           string                `json:"description"`
	Status                common.TestRunStatus  `json:"status"`
	EnvironmentVariables  map[string]string     `json:"environmentVariables"`
	DebugLogsEnabled      bool                  `json:"debugLogsEnabled"`
	LoadTestConfiguration LoadTestConfiguration `json:"loadTestConfiguration"`
	TestArtifacts         *TestArtifacts        `json:"testArtifacts"`
	StartDateTime         *strfmt.DateTime      `json:"startDateTime,omitempty"`
	EndDateTime           *strfmt.DateTime      `json:"endDateTime,omitempty"`

	// Raw is the document the CLI printed, for JMESPath checks.
	Raw json.RawMessage `json:"-"`
}

// OutputArtifacts is nil safe access to testArtifacts.outputArtifacts.
func (r *TestRun) OutputArtifacts() *OutputArtifacts {
	if r == nil || r.TestArtifacts == nil {
		return nil
	}
	return r.TestArtifacts.OutputArtifacts
}

// Elapsed is the time between the start and the end of the run, ok is
// false until the service has reported both.
func (r *TestRun) Elapsed() (elapsed time.Duration, ok bool) {
	if r == nil || r.StartDateTime == nil || r.EndDateTime == nil {
		return 0, false
	}
	start, end := time.Time(*r.StartDateTime), time.Time(*r.EndDateTime)
	if start.IsZero() || end.IsZero() {
		return 0, false
	}
	return end.Sub(start), true
}

type AppComponent struct {
	ResourceID     string `json:"resourceId"`
	ResourceName   string `json:"resourceName"`
	ResourceType   string `json:"resourceType"`
	ResourceGroup  string `json:"resourceGroup"`
	SubscriptionID string `json:"subscriptionId"`
	DisplayName    string `json:"displayName"`
	Kind           string `json:"kind"`
}

// AppComponents is the app-component list output, keyed by resource id.
type AppComponents struct {
	TestRunID  string                  `json:"testRunId"`
	Components map[string]AppComponent `json:"components"`
}

type ServerMetric struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	MetricNamespace    string `json:"metricNamespace"`
	Aggregation        string `json:"aggregation"`
	ResourceID         string `json:"resourceId"`
	ResourceType       string `json:"resourceType"`
	DisplayDescription string `json:"displayDescription"`
	Unit               string `json:"unit"`
}

// ServerMetrics is the server-metric list output, keyed by metric id.
type ServerMetrics struct {
	TestRunID string                  `json:"testRunId"`
	Metrics   map[string]ServerMetric `json:"metrics"`
}

type DimensionValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type TimeSeriesPoint struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// MetricEntry is one time series of a metrics list result.
type MetricEntry struct {
	Data            []TimeSeriesPoint `json:"data"`
	DimensionValues []DimensionValue  `json:"dimensionValues"`
}

// DimensionNames returns the distinct dimension names across entries.
func DimensionNames(entries []MetricEntry) []string {
	seen := map[string]bool{}
	var names []string
	for _, e := range entries {
		for _, d := range e.DimensionValues {
			if !seen[d.Name] {
				seen[d.Name] = true
				names = append(names, d.Name)
			}
		}
	}
	return names
}

// DimensionValues returns every value of the named dimension across entries.
func DimensionValues(entries []MetricEntry, name string) []string {
	var values []string
	for _, e := range entries {
		for _, d := range e.DimensionValues {
			if d.Name == name {
				values = append(values, d.Value)
			}
		}
	}
	return values
}
