package testrun_app_component

import (
	"azload-e2e/common"
	"azload-e2e/common/azresource"
	"azload-e2e/common/e2etest"
	"azload-e2e/common/loadtest"
	"azload-e2e/common/preparers"

	. "github.com/onsi/gomega"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// storageAccountComponent describes the case's storage account as an app component.
func storageAccountComponent(tc *e2etest.Case) loadtest.AppComponentSpec {
	sa, err := preparers.ShowStorageAccount(tc.Context(), tc.Az(), tc.ResourceGroup.Name, tc.StorageAccount.Name)
	Expect(err).ToNot(HaveOccurred())
	Expect(azresource.IsValid(sa.ID)).To(BeTrue(), "storage account id %s", sa.ID)
	return loadtest.AppComponentSpec{
		ID:   sa.ID,
		Name: sa.Name,
		Type: sa.Type,
		Kind: sa.Kind,
	}
}

func addAndVerifyAppComponent(tc *e2etest.Case, component loadtest.AppComponentSpec) {
	_, err := tc.Client.AddAppComponent(tc.Context(), tc.TestRunID, component)
	Expect(err).ToNot(HaveOccurred(), "failed to add app component %s", component.ID)

	listed, err := tc.Client.ListAppComponents(tc.Context(), tc.TestRunID)
	Expect(err).ToNot(HaveOccurred())
	logf.Log.Info("App components", "testRunId", tc.TestRunID, "count", len(listed.Components))
	Expect(listed.Components).To(HaveKey(component.ID))
	Expect(listed.Components[component.ID].ResourceID).To(Equal(component.ID))
}

func removeAndVerifyAppComponent(tc *e2etest.Case, id string) {
	Expect(tc.Client.RemoveAppComponent(tc.Context(), tc.TestRunID, id)).To(Succeed())

	listed, err := tc.Client.ListAppComponents(tc.Context(), tc.TestRunID)
	Expect(err).ToNot(HaveOccurred())
	Expect(listed.Components).ToNot(HaveKey(id))
}

func rejectInvalidAppComponentID(tc *e2etest.Case) {
	Expect(azresource.IsValid(common.InvalidAppComponentID)).To(BeFalse())
	_, err := tc.Client.AddAppComponent(tc.Context(), tc.TestRunID, loadtest.AppComponentSpec{
		ID:   common.InvalidAppComponentID,
		Name: common.AppComponentName,
		Type: common.AppComponentType,
	})
	Expect(err).To(HaveOccurred(), "invalid app component id was accepted")
	Expect(err).To(MatchError(ContainSubstring(common.ErrInvalidAppComponentID)))
}

func rejectAppComponentTypeMismatch(tc *e2etest.Case) {
	matches, err := azresource.TypeMatches(common.AppComponentID, common.InvalidAppComponentType)
	Expect(err).ToNot(HaveOccurred())
	Expect(matches).To(BeFalse())

	_, err = tc.Client.AddAppComponent(tc.Context(), tc.TestRunID, loadtest.AppComponentSpec{
		ID:   common.AppComponentID,
		Name: common.AppComponentName,
		Type: common.InvalidAppComponentType,
	})
	Expect(err).To(HaveOccurred(), "mismatched app component type was accepted")
	Expect(err).To(MatchError(ContainSubstring(common.ErrAppComponentMismatch)))
}
