package iface

import (
	"errors"
	"fmt"

	"github.com/cpritcha/meillionen/pkg/call"
	"github.com/cpritcha/meillionen/pkg/iface/wire"
)

// ClassInterface groups the methods of one class. Method order is
// preserved from construction through encode and decode.
type ClassInterface struct {
	name    string
	methods map[string]*MethodInterface
	order   []string
}

// NewClassInterface builds a class from methods in slice order. Names
// are lookup keys, so the class name and every method name must be
// non-empty, and two methods with the same name fail with
// ErrDuplicateMethod.
func NewClassInterface(name string, methods []*MethodInterface) (*ClassInterface, error) {
	if name == "" {
		return nil, errors.New("iface: empty class name")
	}
	for _, m := range methods {
		if m.Name() == "" {
			return nil, fmt.Errorf("iface: empty method name in class %s", name)
		}
	}
	byName, err := keyByName(methods, ErrDuplicateMethod)
	if err != nil {
		return nil, err
	}
	c := &ClassInterface{name: name, methods: byName, order: make([]string, 0, len(methods))}
	for _, m := range methods {
		c.order = append(c.order, m.Name())
	}
	return c, nil
}

// ClassFromMap builds a class from methods keyed by name, ordering
// them by sorted name since map iteration order is unspecified.
func ClassFromMap(name string, methods map[string]*MethodInterface) (*ClassInterface, error) {
	return NewClassInterface(name, sortedByName(methods))
}

func (c *ClassInterface) Name() string { return c.name }

// Method returns the named method, or ErrMethodNotFound.
func (c *ClassInterface) Method(name string) (*MethodInterface, error) {
	m, ok := c.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, c.name, name)
	}
	return m, nil
}

// Methods returns the methods in registration order.
func (c *ClassInterface) Methods() []*MethodInterface {
	out := make([]*MethodInterface, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.methods[name])
	}
	return out
}

// Encode writes the class record and returns its offset.
func (c *ClassInterface) Encode(b *wire.Builder) wire.Offset {
	name := b.CreateString(c.name)
	methods := b.OffsetVector(encodeAll(b, c.Methods()))
	b.StartRecord(classNumFields)
	b.Field(classFieldName, name)
	b.Field(classFieldMethods, methods)
	return b.EndRecord()
}

// DecodeClassInterface reads one class record along with its methods.
func DecodeClassInterface(rec wire.Record, res call.Resolver) (c *ClassInterface, err error) {
	defer func() { err = coerce(err, ErrMalformedRecord) }()
	defer wire.Guard(&err)

	name, ok := rec.StringField(classFieldName)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: class name missing", ErrMalformedRecord)
	}
	vec, err := rec.RecordVectorField(classFieldMethods)
	if err != nil {
		return nil, err
	}
	methods, err := decodeEach(vec, func(mrec wire.Record) (*MethodInterface, error) {
		return DecodeMethodInterface(mrec, res)
	})
	if err != nil {
		return nil, err
	}
	return NewClassInterface(name, methods)
}
