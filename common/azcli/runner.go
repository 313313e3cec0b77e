package azcli

// Runs the az CLI as a subprocess and decodes its JSON output.
import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

const defaultCacheTTL = 10 * time.Minute

// Executor runs az commands, *Runner is the production implementation.
type Executor interface {
	Run(ctx context.Context, args ...string) (*Result, error)
	RunCached(ctx context.Context, args ...string) (*Result, error)
}

// Result is the captured output of a successful command.
type Result struct {
	Args     []string
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// JSON decodes stdout into v.
func (r *Result) JSON(v interface{}) error {
	if len(bytes.TrimSpace(r.Stdout)) == 0 {
		return errors.Errorf("az %s: empty output", strings.Join(r.Args, " "))
	}
	if err := json.Unmarshal(r.Stdout, v); err != nil {
		logf.Log.Info("Failed to unmarshal", "string", string(r.Stdout))
		return errors.Wrapf(err, "az %s: decoding output", strings.Join(r.Args, " "))
	}
	return nil
}

// Empty reports whether the command printed nothing, which is the
// case for deletes and removes.
func (r *Result) Empty() bool {
	return len(bytes.TrimSpace(r.Stdout)) == 0
}

type Runner struct {
	azPath  string
	timeout time.Duration
	cache   *cache.Cache
}

type Option func(*Runner)

// WithTimeout bounds every invocation, zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithCacheTTL sets the lifetime of results memoised by RunCached.
func WithCacheTTL(d time.Duration) Option {
	return func(r *Runner) {
		r.cache = cache.New(d, 2*d)
	}
}

func NewRunner(azPath string, opts ...Option) *Runner {
	r := &Runner{
		azPath: azPath,
		cache:  cache.New(defaultCacheTTL, 2*defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes az with args and JSON output. A non-zero exit status
// is returned as *CommandError.
func (r *Runner) Run(ctx context.Context, args ...string) (*Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	full := withOutputJSON(args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.azPath, full...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logf.Log.Info("Running", "cmd", "az "+strings.Join(args, " "))
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		cmdErr := &CommandError{
			Args:     args,
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		if ctx.Err() != nil {
			cmdErr.Err = ctx.Err()
		}
		logf.Log.Info("az command failed", "cmd", "az "+strings.Join(args, " "),
			"exitCode", cmdErr.ExitCode, "stderr", cmdErr.Stderr, "duration", elapsed)
		return nil, cmdErr
	}

	logf.Log.V(1).Info("az command succeeded", "cmd", "az "+strings.Join(args, " "), "duration", elapsed)
	return &Result{
		Args:     args,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: elapsed,
	}, nil
}

// RunCached is Run for read-only lookups, successful results are
// reused until the cache TTL expires.
func (r *Runner) RunCached(ctx context.Context, args ...string) (*Result, error) {
	key := strings.Join(args, "\x00")
	if v, found := r.cache.Get(key); found {
		return v.(*Result), nil
	}
	res, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, res)
	return res, nil
}

// Forget drops every memoised result.
func (r *Runner) Forget() {
	r.cache.Flush()
}

func withOutputJSON(args []string) []string {
	full := make([]string, 0, len(args)+4)
	full = append(full, args...)
	for _, a := range args {
		if a == "--output" || a == "-o" {
			return append(full, "--only-show-errors")
		}
	}
	return append(full, "--output", "json", "--only-show-errors")
}
