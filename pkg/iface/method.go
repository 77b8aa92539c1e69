package iface

import (
	"context"
	"fmt"

	"github.com/cpritcha/meillionen/pkg/call"
	"github.com/cpritcha/meillionen/pkg/iface/wire"
)

// MethodInterface describes one callable method: its lookup name, the
// handle naming the callable in a resolver, and the handler bound at
// decode time when resolution succeeded.
type MethodInterface struct {
	name   string
	handle string
	fn     call.Handler
}

// NewMethodInterface binds a named method to a handler. The handle is
// what travels on the wire, so a remote peer can resolve the same
// callable against its own handler set.
func NewMethodInterface(name, handle string, fn call.Handler) *MethodInterface {
	return &MethodInterface{name: name, handle: handle, fn: fn}
}

func (m *MethodInterface) Name() string { return m.name }

// Handle returns the resolver key carried on the wire.
func (m *MethodInterface) Handle() string { return m.handle }

// Handler returns the bound callable. It is nil when the descriptor
// was decoded without a resolver or the handle was unknown.
func (m *MethodInterface) Handler() call.Handler { return m.fn }

// Call invokes the bound handler, passing the request ports through
// untouched.
func (m *MethodInterface) Call(ctx context.Context, sinks, sources call.Ports) (any, error) {
	if m.fn == nil {
		return nil, fmt.Errorf("%w: %s (handle %q)", ErrHandleNotResolved, m.name, m.handle)
	}
	return m.fn.Call(ctx, sinks, sources)
}

// Encode writes the method record and returns its offset.
func (m *MethodInterface) Encode(b *wire.Builder) wire.Offset {
	name := b.CreateString(m.name)
	handle := b.CreateString(m.handle)
	b.StartRecord(methodNumFields)
	b.Field(methodFieldName, name)
	b.Field(methodFieldHandle, handle)
	return b.EndRecord()
}

// DecodeMethodInterface reads one method record. A non-nil resolver
// binds the handle eagerly, so dispatch later runs without touching
// shared state; unknown handles stay unbound rather than failing,
// which keeps foreign descriptors inspectable.
func DecodeMethodInterface(rec wire.Record, res call.Resolver) (m *MethodInterface, err error) {
	defer func() { err = coerce(err, ErrMalformedRecord) }()
	defer wire.Guard(&err)

	name, ok := rec.StringField(methodFieldName)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: method name missing", ErrMalformedRecord)
	}
	handle, _ := rec.StringField(methodFieldHandle)
	var fn call.Handler
	if res != nil && handle != "" {
		fn, _ = res.Resolve(handle)
	}
	return &MethodInterface{name: name, handle: handle, fn: fn}, nil
}
