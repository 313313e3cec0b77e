package loadtest

import (
	"context"

	"azload-e2e/common"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const componentsJSON = `{
	"testRunId": "run-1",
	"components": {
		"` + common.AppComponentID + `": {
			"resourceId": "` + common.AppComponentID + `",
			"resourceName": "clitestload000000",
			"resourceType": "Microsoft.Storage/storageAccounts",
			"kind": "StorageV2"
		}
	}
}`

var _ = Describe("App components, server metrics and metrics", func() {
	var (
		ctx    context.Context
		fake   *fakeExecutor
		client *Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		fake = newFakeExecutor()
		client = NewClient(fake, Scope{ResourceGroup: "rg", LoadTestResource: "lt"})
	})

	It("keys app components by resource id", func() {
		fake.on("load test-run app-component list", componentsJSON, nil)
		comps, err := client.ListAppComponents(ctx, "run-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(comps.Components).To(HaveKey(common.AppComponentID))
		Expect(comps.Components[common.AppComponentID].ResourceID).To(Equal(common.AppComponentID))
	})

	It("omits an empty app component kind", func() {
		fake.on("load test-run app-component add", componentsJSON, nil)
		_, err := client.AddAppComponent(ctx, "run-1", AppComponentSpec{
			ID:   common.AppComponentID,
			Name: common.AppComponentName,
			Type: common.AppComponentType,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(fake.lastCall()).ToNot(ContainElement("--app-component-kind"))
	})

	It("confirms removals", func() {
		fake.on("load test-run app-component remove", "", nil).
			on("load test-run server-metric remove", "", nil)
		Expect(client.RemoveAppComponent(ctx, "run-1", common.AppComponentID)).To(Succeed())
		Expect(fake.lastCall()).To(ContainElement("--yes"))
		Expect(client.RemoveServerMetric(ctx, "run-1", "m")).To(Succeed())
		Expect(fake.lastCall()).To(ContainElement("--yes"))
	})

	It("keys server metrics by metric id", func() {
		metricID := "/subscriptions/s/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/sa/providers/microsoft.insights/metricdefinitions/Availability"
		fake.on("load test-run server-metric list", `{"metrics": {"`+metricID+`": {"id": "`+metricID+`", "name": "Availability"}}}`, nil)
		metrics, err := client.ListServerMetrics(ctx, "run-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(metrics.Metrics).To(HaveKey(metricID))
	})

	It("reads metric names from a map or a list", func() {
		fake.on("load test-run metrics list", `{"VirtualUsers": [], "ResponseTime": []}`, nil).
			on("load test-run metrics list", `["VirtualUsers"]`, nil)
		names, err := client.ListMetricNames(ctx, "run-1", common.MetricNamespace)
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"ResponseTime", "VirtualUsers"}))

		names, err = client.ListMetricNames(ctx, "run-1", common.MetricNamespace)
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(ConsistOf(common.MetricName))
	})

	It("passes dimension filters as separate values", func() {
		fake.on("load test-run metrics list", `[
			{"data": [{"timestamp": "2024-05-13T10:00:00Z", "value": 1}],
			 "dimensionValues": [{"name": "RequestName", "value": "HTTP Request"}]}
		]`, nil)
		entries, err := client.ListMetrics(ctx, "run-1", MetricsQuery{
			Namespace:        common.MetricNamespace,
			Name:             common.MetricName,
			DimensionFilters: []string{common.MetricFiltersValueSpecific},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Data).ToNot(BeEmpty())
		Expect(DimensionNames(entries)).To(ConsistOf(common.MetricDimensionName))
		Expect(DimensionValues(entries, common.MetricDimensionName)).To(ConsistOf(common.MetricDimensionValue))

		call := fake.lastCall()
		Expect(call[len(call)-2:]).To(Equal([]string{"--dimension-filters", common.MetricFiltersValueSpecific}))
	})

	It("requires a metric name for a series query", func() {
		_, err := client.ListMetrics(ctx, "run-1", MetricsQuery{Namespace: common.MetricNamespace})
		Expect(err).To(HaveOccurred())
	})
})
