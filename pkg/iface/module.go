package iface

import (
	"context"
	"fmt"

	"github.com/cpritcha/meillionen/pkg/call"
	"github.com/cpritcha/meillionen/pkg/iface/wire"
)

// ModuleInterface is the root descriptor: every class a module
// exposes, in registration order.
type ModuleInterface struct {
	classes map[string]*ClassInterface
	order   []string
}

// NewModuleInterface builds a module from classes in slice order. Two
// classes with the same name fail with ErrDuplicateClass.
func NewModuleInterface(classes []*ClassInterface) (*ModuleInterface, error) {
	byName, err := keyByName(classes, ErrDuplicateClass)
	if err != nil {
		return nil, err
	}
	m := &ModuleInterface{classes: byName, order: make([]string, 0, len(classes))}
	for _, c := range classes {
		m.order = append(m.order, c.Name())
	}
	return m, nil
}

// ModuleFromMap builds a module from classes keyed by name, ordering
// them by sorted name since map iteration order is unspecified.
func ModuleFromMap(classes map[string]*ClassInterface) (*ModuleInterface, error) {
	return NewModuleInterface(sortedByName(classes))
}

// Class returns the named class, or ErrClassNotFound.
func (m *ModuleInterface) Class(name string) (*ClassInterface, error) {
	c, ok := m.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	return c, nil
}

// Classes returns the classes in registration order.
func (m *ModuleInterface) Classes() []*ClassInterface {
	out := make([]*ClassInterface, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.classes[name])
	}
	return out
}

// Dispatch routes a request to its method: class lookup, then method
// lookup, then the call itself. Both lookups are exact string matches
// and the request ports reach the handler untouched.
func (m *ModuleInterface) Dispatch(ctx context.Context, req *call.Request) (any, error) {
	c, err := m.Class(req.ClassName)
	if err != nil {
		return nil, err
	}
	meth, err := c.Method(req.MethodName)
	if err != nil {
		return nil, err
	}
	return meth.Call(ctx, req.Sinks, req.Sources)
}

// Encode writes the module record and returns its offset.
func (m *ModuleInterface) Encode(b *wire.Builder) wire.Offset {
	classes := b.OffsetVector(encodeAll(b, m.Classes()))
	b.StartRecord(moduleNumFields)
	b.Field(moduleFieldClasses, classes)
	return b.EndRecord()
}

// MarshalBinary serializes the descriptor to a standalone buffer.
func (m *ModuleInterface) MarshalBinary() ([]byte, error) {
	b := wire.NewBuilder()
	return b.Finish(m.Encode(b)), nil
}

// UnmarshalBinary parses a descriptor without binding handlers, enough
// for inspection. Use DecodeModuleInterface to bind against a
// resolver.
func (m *ModuleInterface) UnmarshalBinary(data []byte) error {
	dec, err := DecodeModuleInterface(data, nil)
	if err != nil {
		return err
	}
	*m = *dec
	return nil
}

// DecodeModuleInterface parses a descriptor buffer. Corrupt bytes
// surface as ErrMalformedBuffer or ErrMalformedRecord rather than a
// panic. A nil resolver leaves every method unbound.
func DecodeModuleInterface(buf []byte, res call.Resolver) (m *ModuleInterface, err error) {
	defer func() { err = coerce(err, ErrMalformedBuffer) }()
	defer wire.Guard(&err)

	root, err := wire.RootRecord(buf)
	if err != nil {
		return nil, err
	}
	vec, err := root.RecordVectorField(moduleFieldClasses)
	if err != nil {
		return nil, err
	}
	classes, err := decodeEach(vec, func(crec wire.Record) (*ClassInterface, error) {
		return DecodeClassInterface(crec, res)
	})
	if err != nil {
		return nil, err
	}
	return NewModuleInterface(classes)
}
