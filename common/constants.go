package common

// Fixed test and test-run identifiers, one pair per scenario so that
// scenarios never observe each other's runs.
const (
	CreateTestID    = "create-test-case"
	CreateTestRunID = "create-test-run-case"
	DeleteTestID    = "delete-test-case"
	DeleteTestRunID = "delete-test-run-case"
	ListTestID      = "list-test-case"
	ListTestRunID   = "list-test-run-case"
	ShowTestID      = "show-test-case"
	ShowTestRunID   = "show-test-run-case"
	UpdateTestID    = "update-test-case"
	UpdateTestRunID = "update-test-run-case"
	StopTestID      = "stop-test-case"
	StopTestRunID   = "stop-test-run-case"

	DownloadTestID             = "download-test-case"
	DownloadTestRunID          = "download-test-run-case"
	HighScaleLoadTestID        = "high-scale-load-test-case"
	HighScaleLoadTestRunID     = "high-scale-load-test-run-case"
	AppComponentTestID         = "app-component-test-case"
	AppComponentTestRunID      = "app-component-test-run-case"
	ServerMetricTestID         = "server-metric-test-case"
	ServerMetricTestRunID      = "server-metric-test-run-case"
	MetricTestID               = "metric-test-case"
	MetricTestRunID            = "metric-test-run-case"
	DebugModeTestID            = "debug-mode-test-case"
	DebugModeTestRunID         = "debug-mode-test-run-case"
	SasURLTestID               = "sas-url-test-case"
	SasURLTestRunID            = "sas-url-test-run-case"
	SasURLRerunTestRunID       = "sas-url-test-run-case-1"
	FakeTestRunID              = "fake_test_run_id"
	InvalidTestRunID           = "Invalid-Test-Run-ID!"
	DefaultTestRunDescription  = "Sample_test_run_description"
	DefaultTestRunDisplayName  = "Sample_test_run_display_name"
	DefaultEnvironmentVariable = "rps"
	DefaultEnvironmentValue    = "11"
)

// App component and server metric fixtures.
const (
	AppComponentID          = "/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/clitest-load-000000/providers/Microsoft.Storage/storageAccounts/clitestload000000"
	AppComponentName        = "clitestload000000"
	AppComponentType        = "Microsoft.Storage/storageAccounts"
	InvalidAppComponentID   = "/subscriptions/invalid/resource/id"
	InvalidAppComponentType = "Microsoft.Compute/virtualMachines"
	ServerMetricName        = "Availability"
	ServerMetricNamespace   = "microsoft.storage/storageaccounts"
	ServerMetricAggregation = "Average"
	InvalidServerMetricID   = "/subscriptions/invalid/resource/id/providers/microsoft.insights/metricdefinitions/Availability"
	ArtifactsURLScheme      = "https://"
	ArtifactsURLStorageHost = "blob.storage.azure.net"
)

// Client metrics of a test run.
const (
	MetricName                 = "VirtualUsers"
	MetricNamespace            = "LoadTestRunMetrics"
	MetricDimensionName        = "RequestName"
	MetricDimensionValue       = "HTTP Request"
	MetricFiltersAll           = "*"
	MetricFiltersValueAll      = "RequestName=*"
	MetricFiltersValueSpecific = "RequestName=HTTP Request"
)

// Substrings of the error messages surfaced by the CLI.
const (
	ErrDuplicateTestRunID     = "Test run with given test run ID : "
	ErrAlreadyExist           = "already exist"
	ErrInvalidTestRunID       = "Invalid test-run-id value"
	ErrInvalidAppComponentID  = "app-component-id is not a valid Azure Resource ID:"
	ErrAppComponentMismatch   = "Type of app-component-id and app-component-type mismatch: "
	ErrInvalidServerMetricID  = "metric-id is not a valid Azure Resource ID:"
	ErrTestRunNotFoundPattern = "(TestRunNotFound) Test run not found with given name \"%s\""
)

// Artifact names written by download-files.
const (
	LogsArchive           = "logs.zip"
	ResultsArchive        = "csv.zip"
	ReportsArchive        = "reports.zip"
	InputArtifactsArchive = "inputartifacts.zip"
	LogsDir               = "logs"
	ResultsDir            = "results"
)

// Tags applied by the resource group preparer.
const (
	TagRunID   = "clitest-run"
	TagCreated = "clitest-created"
)
