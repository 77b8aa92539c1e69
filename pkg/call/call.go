// Package call carries the request and handler contracts shared by
// interface descriptors and their hosts. A Request names a class and a
// method and binds the method's ports; a Handler is the capability a
// concrete method implementation exposes to be invoked through dispatch.
package call

import "context"

// Ports holds named port bindings. Sinks name where a method writes,
// sources name where it reads; both are opaque at this layer and travel
// to the handler untouched.
type Ports map[string]any

// Request asks for one method invocation. It is a plain value; validity
// of the port bindings is the callee's concern.
type Request struct {
	ClassName  string `json:"class_name"`
	MethodName string `json:"method_name"`
	Sinks      Ports  `json:"sinks"`
	Sources    Ports  `json:"sources"`
}

// Handler is the callable bound to a method interface. Implementations
// receive the request's ports as-is and own their blocking, timeout, and
// failure behavior; dispatch passes results and errors through
// unmodified.
type Handler interface {
	Call(ctx context.Context, sinks, sources Ports) (any, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, sinks, sources Ports) (any, error)

// Call invokes f.
func (f HandlerFunc) Call(ctx context.Context, sinks, sources Ports) (any, error) {
	return f(ctx, sinks, sources)
}
