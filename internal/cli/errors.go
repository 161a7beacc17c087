package cli

import "errors"

var (
	// ErrUsage marks user-facing configuration mistakes.
	ErrUsage = errors.New("cli usage error")
	// ErrIssues marks a run that wrote best-effort output but collected
	// error-severity resolution issues.
	ErrIssues = errors.New("resolution completed with errors")
)

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}

type issuesError struct {
	msg string
}

func newIssuesError(msg string) error {
	return issuesError{msg: msg}
}

func (e issuesError) Error() string {
	return e.msg
}

func (e issuesError) Is(target error) bool {
	return target == ErrIssues
}
