package appsync

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrorEntry is one (type, message) pair inside an Error. A plain Error holds
// one entry; merged errors hold several, in encounter order.
type ErrorEntry struct {
	ErrorType    string `json:"errorType"`
	ErrorMessage string `json:"errorMessage"`
}

// Error is the only error value ever serialized into a resolver response.
// It carries a kind (the AppSync errorType), a message, optional structured
// data, and possibly further merged entries.
type Error struct {
	entries []ErrorEntry
	info    map[string]any
}

// NewError returns an Error with a single (errorType, message) entry.
func NewError(errorType, message string) *Error {
	return &Error{entries: []ErrorEntry{{ErrorType: errorType, ErrorMessage: message}}}
}

// NewErrorf is NewError with a formatted message.
func NewErrorf(errorType, format string, args ...any) *Error {
	return NewError(errorType, fmt.Sprintf(format, args...))
}

// WithInfo attaches structured data that is serialized into the response's
// errorInfo object alongside any merged entries. It returns e.
func (e *Error) WithInfo(key string, value any) *Error {
	if e.info == nil {
		e.info = map[string]any{}
	}
	e.info[key] = value
	return e
}

// Or merges e with other into a composite preserving every constituent
// (type, message) pair in encounter order. Merging with a composite appends
// its entries rather than nesting. A nil operand yields the other operand
// unchanged.
func (e *Error) Or(other *Error) *Error {
	if e == nil {
		return other
	}
	if other == nil {
		return e
	}
	merged := &Error{
		entries: append(append([]ErrorEntry{}, e.entries...), other.entries...),
	}
	for _, src := range []map[string]any{e.info, other.info} {
		for k, v := range src {
			if merged.info == nil {
				merged.info = map[string]any{}
			}
			merged.info[k] = v
		}
	}
	return merged
}

// ErrorType returns the errorType of the first entry.
func (e *Error) ErrorType() string { return e.entries[0].ErrorType }

// ErrorMessage returns the errorMessage of the first entry.
func (e *Error) ErrorMessage() string { return e.entries[0].ErrorMessage }

// Entries returns every constituent (type, message) pair in encounter order.
func (e *Error) Entries() []ErrorEntry {
	return append([]ErrorEntry{}, e.entries...)
}

// Info returns the structured data attached with WithInfo, or nil.
func (e *Error) Info() map[string]any { return e.info }

func (e *Error) Error() string {
	if len(e.entries) == 1 {
		return fmt.Sprintf("%s: %s", e.entries[0].ErrorType, e.entries[0].ErrorMessage)
	}
	parts := make([]string, 0, len(e.entries))
	for _, entry := range e.entries {
		parts = append(parts, fmt.Sprintf("%s: %s", entry.ErrorType, entry.ErrorMessage))
	}
	return strings.Join(parts, " | ")
}

// ErrorFrom adapts any error into an *Error. It never fails: an *Error passes
// through unchanged, an AWS service error contributes its API error code and
// message, and anything else becomes a generic ServiceError carrying the
// error's text. Handlers call this at their natural failure-propagation
// points; the dispatcher never needs to.
func ErrorFrom(err error) *Error {
	var appsyncErr *Error
	if errors.As(err, &appsyncErr) {
		return appsyncErr
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return NewError(apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return NewError("ServiceError", err.Error())
}
