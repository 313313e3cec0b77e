package testrun_metrics

import (
	"azload-e2e/common"
	"azload-e2e/common/e2etest"
	"azload-e2e/common/loadtest"

	. "github.com/onsi/gomega"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

func verifyMetricNames(tc *e2etest.Case) {
	names, err := tc.Client.ListMetricNames(tc.Context(), tc.TestRunID, common.MetricNamespace)
	Expect(err).ToNot(HaveOccurred())
	logf.Log.Info("Metrics", "testRunId", tc.TestRunID, "names", names)
	Expect(names).ToNot(BeEmpty())
	Expect(names).To(ContainElement(common.MetricName))
}

func listMetrics(tc *e2etest.Case, filters ...string) []loadtest.MetricEntry {
	entries, err := tc.Client.ListMetrics(tc.Context(), tc.TestRunID, loadtest.MetricsQuery{
		Namespace:        common.MetricNamespace,
		Name:             common.MetricName,
		DimensionFilters: filters,
	})
	Expect(err).ToNot(HaveOccurred(), "failed to list %s with filters %v", common.MetricName, filters)
	Expect(entries).ToNot(BeEmpty())
	return entries
}

func verifyMetricSeries(tc *e2etest.Case) {
	entries := listMetrics(tc)
	Expect(entries[0].Data).ToNot(BeEmpty())
}

// verifyDimensionFilter checks that the request name dimension and the
// sampler of the test plan appear in the filtered series.
func verifyDimensionFilter(tc *e2etest.Case, filter string) {
	entries := listMetrics(tc, filter)
	Expect(loadtest.DimensionNames(entries)).To(ContainElement(common.MetricDimensionName), "filter %s", filter)
	Expect(loadtest.DimensionValues(entries, common.MetricDimensionName)).To(ContainElement(common.MetricDimensionValue), "filter %s", filter)
}
