package testrun_server_metric

import (
	"azload-e2e/common"
	"azload-e2e/common/azresource"
	"azload-e2e/common/e2etest"
	"azload-e2e/common/loadtest"
	"azload-e2e/common/preparers"

	. "github.com/onsi/gomega"
)

// attachStorageAccount adds the case's storage account as an app
// component, server metrics can only refer to app components.
func attachStorageAccount(tc *e2etest.Case) loadtest.AppComponentSpec {
	sa, err := preparers.ShowStorageAccount(tc.Context(), tc.Az(), tc.ResourceGroup.Name, tc.StorageAccount.Name)
	Expect(err).ToNot(HaveOccurred())
	component := loadtest.AppComponentSpec{ID: sa.ID, Name: sa.Name, Type: sa.Type, Kind: sa.Kind}

	_, err = tc.Client.AddAppComponent(tc.Context(), tc.TestRunID, component)
	Expect(err).ToNot(HaveOccurred(), "failed to add app component %s", component.ID)
	listed, err := tc.Client.ListAppComponents(tc.Context(), tc.TestRunID)
	Expect(err).ToNot(HaveOccurred())
	Expect(listed.Components).To(HaveKey(component.ID))
	return component
}

func serverMetricFor(component loadtest.AppComponentSpec) loadtest.ServerMetricSpec {
	return loadtest.ServerMetricSpec{
		ID:               azresource.MetricDefinitionID(component.ID, common.ServerMetricName),
		Name:             common.ServerMetricName,
		Namespace:        common.ServerMetricNamespace,
		Aggregation:      common.ServerMetricAggregation,
		AppComponentID:   component.ID,
		AppComponentType: component.Type,
	}
}

func addAndVerifyServerMetric(tc *e2etest.Case, metric loadtest.ServerMetricSpec) {
	_, err := tc.Client.AddServerMetric(tc.Context(), tc.TestRunID, metric)
	Expect(err).ToNot(HaveOccurred(), "failed to add server metric %s", metric.ID)

	listed, err := tc.Client.ListServerMetrics(tc.Context(), tc.TestRunID)
	Expect(err).ToNot(HaveOccurred())
	Expect(listed.Metrics).To(HaveKey(metric.ID))
}

func removeAndVerifyServerMetric(tc *e2etest.Case, id string) {
	Expect(tc.Client.RemoveServerMetric(tc.Context(), tc.TestRunID, id)).To(Succeed())

	listed, err := tc.Client.ListServerMetrics(tc.Context(), tc.TestRunID)
	Expect(err).ToNot(HaveOccurred())
	Expect(listed.Metrics).ToNot(HaveKey(id))
}

func rejectInvalidServerMetricID(tc *e2etest.Case, component loadtest.AppComponentSpec) {
	_, err := tc.Client.AddServerMetric(tc.Context(), tc.TestRunID, loadtest.ServerMetricSpec{
		ID:               common.InvalidServerMetricID,
		Name:             common.ServerMetricName,
		Namespace:        common.ServerMetricNamespace,
		Aggregation:      common.ServerMetricAggregation,
		AppComponentID:   common.AppComponentID,
		AppComponentType: component.Type,
	})
	Expect(err).To(HaveOccurred(), "invalid server metric id was accepted")
	Expect(err).To(MatchError(ContainSubstring(common.ErrInvalidServerMetricID)))
}
