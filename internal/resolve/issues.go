package resolve

import (
	"fmt"

	"github.com/swaggertools/swagger2requests/internal/spec"
)

// IssueCode categorizes resolution diagnostics.
type IssueCode string

const (
	MissingServer            IssueCode = "MissingServer"
	MalformedServerURL       IssueCode = "MalformedServerURL"
	UnknownParameterLocation IssueCode = "UnknownParameterLocation"
	UnresolvedReference      IssueCode = "UnresolvedReference"
	MissingOperationID       IssueCode = "MissingOperationID"
	DuplicateOperationID     IssueCode = "DuplicateOperationID"
)

// Severity splits issues into ones that should fail the run and ones that
// are informational.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one diagnostic collected while resolving a document. Resolution
// never aborts on an issue; callers decide what to do with the collected
// set after the pass completes.
type Issue struct {
	Code        IssueCode
	Severity    Severity
	Path        string
	Method      spec.HTTPMethod
	OperationID string
	Message     string
}

func (i Issue) String() string {
	loc := ""
	if i.Path != "" {
		loc = fmt.Sprintf(" at %s %s", i.Method, i.Path)
	}
	if i.OperationID != "" {
		loc += fmt.Sprintf(" (%s)", i.OperationID)
	}
	return fmt.Sprintf("%s: %s%s: %s", i.Severity, i.Code, loc, i.Message)
}

// HasErrors reports whether any issue in the list is error-severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
