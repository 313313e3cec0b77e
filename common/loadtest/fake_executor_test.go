package loadtest

import (
	"context"
	"strings"
	"sync"

	"azload-e2e/common/azcli"
)

// fakeExecutor answers az invocations from canned responses keyed by the
// command words, e.g. "load test-run show".
type fakeExecutor struct {
	mu        sync.Mutex
	calls     [][]string
	responses map[string][]fakeResponse
}

type fakeResponse struct {
	stdout string
	err    error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{responses: map[string][]fakeResponse{}}
}

// on queues a response for the command, the last queued response repeats.
func (f *fakeExecutor) on(command, stdout string, err error) *fakeExecutor {
	f.responses[command] = append(f.responses[command], fakeResponse{stdout: stdout, err: err})
	return f
}

func commandOf(args []string) string {
	var words []string
	for _, a := range args {
		if strings.HasPrefix(a, "--") {
			break
		}
		words = append(words, a)
	}
	return strings.Join(words, " ")
}

func (f *fakeExecutor) Run(_ context.Context, args ...string) (*azcli.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, args)
	cmd := commandOf(args)
	queue := f.responses[cmd]
	if len(queue) == 0 {
		return nil, &azcli.CommandError{Args: args, ExitCode: 2, Stderr: "unexpected command " + cmd}
	}
	resp := queue[0]
	if len(queue) > 1 {
		f.responses[cmd] = queue[1:]
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return &azcli.Result{Args: args, Stdout: []byte(resp.stdout)}, nil
}

func (f *fakeExecutor) RunCached(ctx context.Context, args ...string) (*azcli.Result, error) {
	return f.Run(ctx, args...)
}

func (f *fakeExecutor) lastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeExecutor) callCount(command string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if commandOf(c) == command {
			n++
		}
	}
	return n
}
