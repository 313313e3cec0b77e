package azcli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// CommandError is returned when az exits with a non-zero status. Its
// message carries the CLI's stderr, which is where the service error
// text ends up.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("az %s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsCommandError reports whether err is, or wraps, a *CommandError.
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}

// ErrorContains reports whether the stderr of a failed command contains s.
func ErrorContains(err error, s string) bool {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return strings.Contains(cmdErr.Stderr, s)
}
