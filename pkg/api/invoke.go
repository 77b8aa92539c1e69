package api

import "context"

// Invoke dispatches one request against a module interface: class
// lookup, method lookup, then the bound handler with the request's
// sinks and sources.
func Invoke(ctx context.Context, m *ModuleInterface, req *Request) (any, error) {
	return m.Dispatch(ctx, req)
}
