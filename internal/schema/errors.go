package schema

import (
	"errors"
	"sort"
	"strings"
)

// ErrValidation matches every *ValidationError with errors.Is.
var ErrValidation = errors.New("validation failed")

// IssueCode classifies a field-level validation problem.
type IssueCode string

const (
	CodeRequired     IssueCode = "required"
	CodeUnknownField IssueCode = "unknown_field"
	CodeInvalidType  IssueCode = "invalid_type"
	CodeInvalidValue IssueCode = "invalid_value"
)

// FieldIssue is one problem with one field of the input.
type FieldIssue struct {
	Field   string    `json:"field"`
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

// ValidationError reports why input was rejected by an insert schema.
type ValidationError struct {
	Table  string
	Issues []FieldIssue
}

func newValidationError(table string, issues []FieldIssue) *ValidationError {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Field != issues[j].Field {
			return issues[i].Field < issues[j].Field
		}
		return issues[i].Code < issues[j].Code
	})
	return &ValidationError{Table: table, Issues: issues}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+": "+is.Message)
	}
	return "invalid " + e.Table + " input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Issue returns the first issue reported for field.
func (e *ValidationError) Issue(field string) (FieldIssue, bool) {
	for _, is := range e.Issues {
		if is.Field == field {
			return is, true
		}
	}
	return FieldIssue{}, false
}
