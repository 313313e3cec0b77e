package common

// TestRunStatus is the lifecycle status reported for a test run.
type TestRunStatus string

const (
	StatusAccepted          TestRunStatus = "ACCEPTED"
	StatusNotStarted        TestRunStatus = "NOTSTARTED"
	StatusProvisioning      TestRunStatus = "PROVISIONING"
	StatusProvisioned       TestRunStatus = "PROVISIONED"
	StatusConfiguring       TestRunStatus = "CONFIGURING"
	StatusConfigured        TestRunStatus = "CONFIGURED"
	StatusExecuting         TestRunStatus = "EXECUTING"
	StatusExecuted          TestRunStatus = "EXECUTED"
	StatusDeprovisioning    TestRunStatus = "DEPROVISIONING"
	StatusDeprovisioned     TestRunStatus = "DEPROVISIONED"
	StatusDone              TestRunStatus = "DONE"
	StatusCancelling        TestRunStatus = "CANCELLING"
	StatusCancelled         TestRunStatus = "CANCELLED"
	StatusFailed            TestRunStatus = "FAILED"
	StatusValidationSuccess TestRunStatus = "VALIDATION_SUCCESS"
	StatusValidationFailure TestRunStatus = "VALIDATION_FAILURE"
)

// IsTerminal reports whether no further transition is expected.
func (s TestRunStatus) IsTerminal() bool {
	switch s {
	case StatusDone, StatusCancelled, StatusFailed, StatusValidationFailure:
		return true
	}
	return false
}

// IsStopped reports whether the run is being or has been brought down
// by a stop request, or failed on the way.
func (s TestRunStatus) IsStopped() bool {
	switch s {
	case StatusCancelling, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// StoppedStatuses lists the statuses a stopped run may settle into.
func StoppedStatuses() []TestRunStatus {
	return []TestRunStatus{StatusCancelling, StatusFailed, StatusCancelled}
}

// FixtureKind selects the load test configuration rendered for a test.
type FixtureKind int

const (
	FixtureStandard FixtureKind = iota
	FixtureRegional
	FixtureHighScale
)

func (k FixtureKind) String() string {
	switch k {
	case FixtureStandard:
		return "Standard"
	case FixtureRegional:
		return "Regional"
	case FixtureHighScale:
		return "HighScale"
	default:
		return "Unknown"
	}
}
