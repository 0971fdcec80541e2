package dispatch

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/graphsmith/appsync"
	"github.com/graphsmith/appsync/filters"
	"github.com/graphsmith/appsync/registry"
	"github.com/graphsmith/appsync/schema"
)

// Hook is an optional pre-dispatch check. Returning a non-nil response
// short-circuits the item (the bound handler never runs); returning nil
// lets dispatch proceed.
type Hook func(ctx context.Context, ev *appsync.Event) *appsync.Response

// Router decodes invocation events and routes each one to its bound
// handler. Record every binding, call Validate once, then hand Handle to
// the Lambda runtime:
//
//	lambda.Start(router.Handle)
//
// After Validate succeeds the router is immutable and safe for concurrent
// use.
type Router struct {
	reg    *registry.Registry
	logger *slog.Logger
	hook   Hook

	bindings map[string]*binding
	ordered  []*binding
	bindErrs []error

	validated atomic.Bool
}

// Option configures a Router.
type Option func(*Router)

// WithLogger replaces the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// WithHook installs a pre-dispatch hook, e.g. for request verification.
func WithHook(hook Hook) Option {
	return func(r *Router) { r.hook = hook }
}

// NewRouter returns a router over the given registry.
func NewRouter(reg *registry.Registry, opts ...Option) *Router {
	r := &Router{
		reg:      reg,
		logger:   slog.Default(),
		bindings: map[string]*binding{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Query binds handler to the named query operation.
func (r *Router) Query(name string, handler any) { r.bind(schema.Query, name, handler) }

// Mutation binds handler to the named mutation operation.
func (r *Router) Mutation(name string, handler any) { r.bind(schema.Mutation, name, handler) }

// Subscription binds handler to the named subscription operation.
func (r *Router) Subscription(name string, handler any) { r.bind(schema.Subscription, name, handler) }

// bind records a candidate binding. Problems (duplicate binding, handler
// not a function) are collected and reported by Validate, so every defect
// surfaces in one startup failure instead of one per run.
func (r *Router) bind(kind schema.OperationKind, name string, handler any) {
	if r.validated.Load() {
		r.bindErrs = append(r.bindErrs, fmt.Errorf("%s %q: bound after Validate", kind, name))
		return
	}
	key := bindingKey(kind, name)
	if _, dup := r.bindings[key]; dup {
		r.bindErrs = append(r.bindErrs, fmt.Errorf("%s %q: bound twice", kind, name))
		return
	}
	v := reflect.ValueOf(handler)
	if !v.IsValid() || v.Kind() != reflect.Func {
		r.bindErrs = append(r.bindErrs, fmt.Errorf("%s %q: handler is not a function", kind, name))
		return
	}
	b := &binding{kind: kind, name: name, fn: v}
	r.bindings[key] = b
	r.ordered = append(r.ordered, b)
}

// Handle processes one invocation payload: either a single event object or
// an array of events. For an array, items run concurrently and the response
// array is index-aligned with the input; one item's failure never disturbs
// its siblings.
//
// The parameter is a json.RawMessage so Handle can be passed to
// lambda.Start directly.
func (r *Router) Handle(ctx context.Context, payload stdjson.RawMessage) (any, error) {
	if !r.validated.Load() {
		return nil, fmt.Errorf("dispatch: router must pass Validate before serving")
	}

	switch jsontext.Value(bytes.TrimSpace(payload)).Kind() {
	case '[':
		var items []jsontext.Value
		if err := json.Unmarshal(jsontext.Value(payload), &items); err != nil {
			return nil, fmt.Errorf("dispatch: decode batch envelope: %w", err)
		}
		responses := make([]*appsync.Response, len(items))
		var wg sync.WaitGroup
		for i, item := range items {
			wg.Add(1)
			go func() {
				defer wg.Done()
				responses[i] = r.handleItem(ctx, item)
			}()
		}
		wg.Wait()
		return responses, nil
	default:
		return r.handleItem(ctx, jsontext.Value(payload)), nil
	}
}

// handleItem runs one event through decode -> dispatch -> response. All
// failures are contained: every path returns a response, including handler
// panics.
func (r *Router) handleItem(ctx context.Context, raw jsontext.Value) (resp *appsync.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("handler panicked", "panic", rec)
			resp = appsync.NewErrorResponse(appsync.NewError("InternalError", "handler panicked"))
		}
	}()

	var ev appsync.Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		r.logger.Warn("rejected malformed event", "error", err)
		return appsync.NewErrorResponse(appsync.NewErrorf("BadRequest", "malformed event: %v", err))
	}

	op, err := r.reg.ResolveOperation(ev.Operation)
	if err != nil {
		r.logger.Warn("rejected event for unknown operation", "operation", ev.Operation, "error", err)
		return appsync.NewErrorResponse(appsync.NewErrorf("BadRequest", "%v", err))
	}

	b := r.bindings[bindingKey(op.Kind, op.Name)]
	if b == nil {
		// Validate guarantees a binding per operation, so a miss here is a
		// dispatcher/registry inconsistency, not a client error.
		r.logger.Error("operation decoded but not bound", "operation", ev.Operation)
		return appsync.NewErrorResponse(appsync.NewErrorf("InternalError", "no handler for operation %q", ev.Operation))
	}

	if r.hook != nil {
		if hooked := r.hook(ctx, &ev); hooked != nil {
			return hooked
		}
	}

	in, argErr := b.callArgs(ctx, &ev)
	if argErr != nil {
		r.logger.Warn("argument decode failed", "operation", ev.Operation, "error", argErr)
		return appsync.NewErrorResponse(argErr)
	}

	out := b.fn.Call(in)
	if errVal := out[1]; !errVal.IsNil() {
		appErr := appsync.ErrorFrom(errVal.Interface().(error))
		r.logger.Error("operation failed", "operation", ev.Operation, "error", appErr)
		return appsync.NewErrorResponse(appErr)
	}

	if op.Kind == schema.Subscription {
		resp = &appsync.Response{}
		if fg, ok := out[0].Interface().(*filters.FilterGroup); ok && fg != nil {
			resp.FilterGroups = fg.Groups
		}
		return resp
	}
	return appsync.NewDataResponse(out[0].Interface())
}

// callArgs builds the reflect.Call input: ctx, one decoded value per schema
// argument, and the event itself when the handler asked for it.
func (b *binding) callArgs(ctx context.Context, ev *appsync.Event) ([]reflect.Value, *appsync.Error) {
	in := make([]reflect.Value, 0, len(b.argTypes)+2)
	in = append(in, reflect.ValueOf(ctx))

	var rawArgs map[string]jsontext.Value
	if len(ev.Arguments) > 0 {
		if err := json.Unmarshal(ev.Arguments, &rawArgs); err != nil {
			return nil, appsync.NewErrorf("InvalidArgs", "arguments is not an object: %v", err)
		}
	}

	for i, arg := range b.op.Args {
		target := reflect.New(b.argTypes[i])
		raw, present := rawArgs[arg.Name]
		if !present || raw.Kind() == 'n' {
			if !arg.Type.Nullable {
				return nil, appsync.NewErrorf("InvalidArgs", "missing required argument %q", arg.Name)
			}
		} else if err := json.Unmarshal(raw, target.Interface()); err != nil {
			return nil, appsync.NewErrorf("InvalidArgs", "argument %q: %v", arg.Name, err)
		}
		in = append(in, target.Elem())
	}

	if b.wantsEvent {
		in = append(in, reflect.ValueOf(ev))
	}
	return in, nil
}
