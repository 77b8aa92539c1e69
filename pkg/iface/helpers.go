package iface

import (
	"fmt"
	"sort"

	"github.com/cpritcha/meillionen/pkg/iface/wire"
)

// encoder is satisfied by every descriptor node.
type encoder interface {
	Encode(b *wire.Builder) wire.Offset
}

// named is satisfied by descriptor nodes addressed by name.
type named interface {
	Name() string
}

// encodeAll encodes items and returns their offsets in the same order.
// Children finish before the caller opens its own record, which the
// builder requires.
func encodeAll[T encoder](b *wire.Builder, items []T) []wire.Offset {
	offs := make([]wire.Offset, len(items))
	for i, it := range items {
		offs[i] = it.Encode(b)
	}
	return offs
}

// decodeEach decodes every record of a vector, preserving order.
func decodeEach[T any](vec wire.RecordVector, decode func(wire.Record) (T, error)) ([]T, error) {
	out := make([]T, 0, vec.Len())
	for i := 0; i < vec.Len(); i++ {
		rec, err := vec.At(i)
		if err != nil {
			return nil, err
		}
		v, err := decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// keyByName indexes items by name, failing with dup on the first
// collision.
func keyByName[T named](items []T, dup error) (map[string]T, error) {
	byName := make(map[string]T, len(items))
	for _, it := range items {
		if _, exists := byName[it.Name()]; exists {
			return nil, fmt.Errorf("%w: %s", dup, it.Name())
		}
		byName[it.Name()] = it
	}
	return byName, nil
}

// sortedByName orders map values by key, since map iteration order is
// unspecified.
func sortedByName[T any](m map[string]T) []T {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]T, 0, len(m))
	for _, name := range names {
		out = append(out, m[name])
	}
	return out
}
