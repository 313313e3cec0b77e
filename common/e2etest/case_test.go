package e2etest

import (
	"context"
	"io/ioutil"
	"os"
	"strings"

	"azload-e2e/common"
	"azload-e2e/common/azcli"
	"azload-e2e/common/loadtest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

type scriptedAz struct {
	calls   [][]string
	outputs map[string]string
}

func (s *scriptedAz) Run(_ context.Context, args ...string) (*azcli.Result, error) {
	s.calls = append(s.calls, args)
	for prefix, out := range s.outputs {
		if strings.HasPrefix(strings.Join(args, " "), prefix) {
			return &azcli.Result{Args: args, Stdout: []byte(out)}, nil
		}
	}
	return &azcli.Result{Args: args}, nil
}

func (s *scriptedAz) RunCached(ctx context.Context, args ...string) (*azcli.Result, error) {
	return s.Run(ctx, args...)
}

func (s *scriptedAz) commands(prefix string) [][]string {
	var out [][]string
	for _, c := range s.calls {
		if strings.HasPrefix(strings.Join(c, " "), prefix) {
			out = append(out, c)
		}
	}
	return out
}

var _ = Describe("Case", func() {
	var (
		az       *scriptedAz
		settings Settings
		fixtures string
	)

	BeforeEach(func() {
		var err error
		fixtures, err = ioutil.TempDir("", "e2etest-fixtures-")
		Expect(err).ToNot(HaveOccurred())
		az = &scriptedAz{outputs: map[string]string{
			"load test create": `{"testId": "` + common.CreateTestID + `"}`,
		}}
		settings = Settings{
			LongRunDuration: 300,
			Location:        "eastus",
			FixturesDir:     fixtures,
		}
	})

	AfterEach(func() {
		Expect(os.RemoveAll(fixtures)).To(Succeed())
	})

	newCase := func() *Case {
		c := NewCase(az, settings, common.CreateTestID, common.CreateTestRunID)
		c.Client = loadtest.NewClient(az, loadtest.Scope{ResourceGroup: "rg", LoadTestResource: "lt"})
		return c
	}

	Describe("cleanup stack", func() {
		It("unwinds last in first out", func() {
			c := newCase()
			var order []string
			for _, name := range []string{"first", "second", "third"} {
				name := name
				c.Defer(name, func(context.Context) error {
					order = append(order, name)
					return nil
				})
			}
			Expect(c.Teardown()).To(BeEmpty())
			Expect(order).To(Equal([]string{"third", "second", "first"}))
		})

		It("runs every step and collects failures", func() {
			c := newCase()
			ran := 0
			c.Defer("ok", func(context.Context) error { ran++; return nil })
			c.Defer("broken", func(context.Context) error { ran++; return errors.New("boom") })
			errs := c.Teardown()
			Expect(ran).To(Equal(2))
			Expect(errs).To(HaveLen(1))
			Expect(errs[0]).To(MatchError(ContainSubstring("broken: boom")))
		})

		It("empties the stack", func() {
			c := newCase()
			ran := 0
			c.Defer("once", func(context.Context) error { ran++; return nil })
			c.Teardown()
			c.Teardown()
			Expect(ran).To(Equal(1))
		})

		It("keeps resources when configured to", func() {
			settings.KeepResources = true
			c := newCase()
			var order []string
			c.DeferResource("resource", func(context.Context) error { order = append(order, "resource"); return nil })
			c.Defer("local", func(context.Context) error { order = append(order, "local"); return nil })
			Expect(c.Teardown()).To(BeEmpty())
			Expect(order).To(Equal([]string{"local"}))
		})
	})

	Describe("helpers", func() {
		It("creates a long test with the duration env var and deletes it on teardown", func() {
			c := newCase()
			test := c.CreateTest(true)
			Expect(test.TestID).To(Equal(common.CreateTestID))

			create := az.commands("load test create")
			Expect(create).To(HaveLen(1))
			Expect(create[0]).To(ContainElement("duration=300"))
			Expect(c.Fixture).ToNot(BeNil())
			Expect(c.Fixture.ConfigFile).To(BeAnExistingFile())

			Expect(c.Teardown()).To(BeEmpty())
			Expect(az.commands("load test delete")).To(HaveLen(1))
			Expect(c.Fixture.Dir).ToNot(BeADirectory())
		})

		It("does not pass a duration for a short test", func() {
			c := newCase()
			c.CreateTest(false)
			Expect(az.commands("load test create")[0]).ToNot(ContainElement("--env"))
		})

		It("does not delete an explicitly deleted test twice", func() {
			c := newCase()
			c.CreateTest(false)
			c.DeleteTest()
			Expect(c.Teardown()).To(BeEmpty())
			Expect(az.commands("load test delete")).To(HaveLen(1))
		})

		It("fails the spec when a blocking create prints nothing", func() {
			c := newCase()
			failures := InterceptGomegaFailures(func() {
				c.CreateTestRun()
			})
			Expect(failures).ToNot(BeEmpty())
			Expect(failures[0]).To(ContainSubstring("test-run create printed nothing"))
		})

		It("accepts an empty no-wait create", func() {
			c := newCase()
			spec := c.DefaultTestRunSpec()
			spec.NoWait = true
			Expect(c.CreateTestRunWith(spec)).To(BeNil())
		})

		It("creates a run with the default arguments", func() {
			az.outputs["load test-run create"] = `{"testRunId": "` + common.CreateTestRunID + `", "status": "DONE"}`
			c := newCase()
			run := c.CreateTestRun()
			Expect(run.Status).To(Equal(common.StatusDone))
			call := az.commands("load test-run create")[0]
			Expect(call).To(ContainElement(common.DefaultEnvironmentVariable + "=" + common.DefaultEnvironmentValue))
			Expect(call).To(ContainElement(common.DefaultTestRunDescription))
			Expect(call).To(ContainElement(common.DefaultTestRunDisplayName))
		})
	})
})
