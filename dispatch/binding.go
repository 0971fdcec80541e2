// Package dispatch binds handler functions to schema operations, validates
// every binding against the registry before any traffic is served, and
// routes incoming invocation events (single or batched) to the bound
// handlers.
package dispatch

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/graphsmith/appsync/schema"
)

// A handler is an ordinary function:
//
//	func(ctx context.Context, <args in schema order>, [ev *appsync.Event]) (T, error)
//
// with one parameter per declared operation argument, typed per the fixed
// scalar mapping, and T the mapped Go type of the operation's return.
// Subscription handlers return (*filters.FilterGroup, error); a nil group
// means no additional filtering. An optional trailing *appsync.Event
// parameter gives the handler the full invocation event.

// BindingError reports every handler/schema mismatch found during Validate.
// It is fatal at startup and never reaches a request.
type BindingError struct {
	errs []error
}

func (e *BindingError) Error() string {
	msgs := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("dispatch: %d binding problem(s):\n  %s", len(e.errs), strings.Join(msgs, "\n  "))
}

// Unwrap exposes the individual mismatches.
func (e *BindingError) Unwrap() []error { return e.errs }

type binding struct {
	kind schema.OperationKind
	name string

	fn reflect.Value

	// filled in by Validate
	op         *schema.OperationDefinition
	wantsEvent bool
	argTypes   []reflect.Type
}

func bindingKey(kind schema.OperationKind, name string) string {
	return kind.String() + "." + name
}
