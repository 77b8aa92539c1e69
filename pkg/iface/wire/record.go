package wire

import (
	"errors"
	"fmt"
	"runtime"

	flatbuffers "github.com/google/flatbuffers/go"
)

// ErrOutOfBounds reports a read that left the buffer, which is what
// truncated descriptors and corrupt offsets come down to.
var ErrOutOfBounds = errors.New("wire: read out of bounds")

// A buffer smaller than the root-offset prefix plus one record position
// cannot hold anything.
const minBufferSize = 2 * flatbuffers.SizeUOffsetT

// Record is a positional view of one record inside a descriptor buffer.
// The zero Record is not usable.
type Record struct {
	tab flatbuffers.Table
}

// RootRecord locates the root record of buf via the root-offset prefix
// at offset 0.
func RootRecord(buf []byte) (Record, error) {
	if len(buf) < minBufferSize {
		return Record{}, fmt.Errorf("%w: %d-byte buffer has no root record", ErrOutOfBounds, len(buf))
	}
	// Accessors bounds-check against cap, not len. Pin cap so a read
	// past len panics into Guard instead of reaching spare capacity.
	buf = buf[:len(buf):len(buf)]
	pos := flatbuffers.GetUOffsetT(buf)
	if int(pos)+flatbuffers.SizeSOffsetT > len(buf) {
		return Record{}, fmt.Errorf("%w: root offset %d in %d-byte buffer", ErrOutOfBounds, pos, len(buf))
	}
	var r Record
	r.tab.Bytes = buf
	r.tab.Pos = pos
	return r, nil
}

// fieldPosition resolves a field index to the field's position relative
// to the record start, or ok=false when the record omits the field.
func (r Record) fieldPosition(field int) (flatbuffers.UOffsetT, bool) {
	o := r.tab.Offset(vtableOffset(field))
	if o == 0 {
		return 0, false
	}
	return flatbuffers.UOffsetT(o), true
}

// vtableOffset converts a zero-based field index to its vtable byte
// offset: field n lives at 4 + 2n.
func vtableOffset(field int) flatbuffers.VOffsetT {
	return flatbuffers.VOffsetT(4 + 2*field)
}

// StringField returns the string stored in field, with ok=false when the
// record omits the field.
func (r Record) StringField(field int) (s string, ok bool) {
	o, present := r.fieldPosition(field)
	if !present {
		return "", false
	}
	return r.tab.String(o + r.tab.Pos), true
}

// RecordVectorField returns the vector of records stored in field. An
// omitted field reads as an empty vector, which is how an empty
// collection is encoded. A length word claiming more elements than the
// buffer can hold is ErrOutOfBounds.
func (r Record) RecordVectorField(field int) (RecordVector, error) {
	o, present := r.fieldPosition(field)
	if !present {
		return RecordVector{}, nil
	}
	pos := r.tab.Vector(o)
	n := r.tab.VectorLen(o)
	// An N-byte buffer holds at most N/4 offsets; a larger claim is a
	// corrupt length word, caught here before it can size a slice.
	if n < 0 || int64(pos)+int64(n)*flatbuffers.SizeUOffsetT > int64(len(r.tab.Bytes)) {
		return RecordVector{}, fmt.Errorf("%w: %d-element vector at %d in %d-byte buffer", ErrOutOfBounds, n, pos, len(r.tab.Bytes))
	}
	return RecordVector{tab: r.tab, pos: pos, n: n}, nil
}

// RecordVector is a positional view of a vector of record offsets. The
// zero value is an empty vector.
type RecordVector struct {
	tab flatbuffers.Table
	pos flatbuffers.UOffsetT
	n   int
}

// Len returns the element count.
func (v RecordVector) Len() int { return v.n }

// At returns the record at index i.
func (v RecordVector) At(i int) (Record, error) {
	if i < 0 || i >= v.n {
		return Record{}, fmt.Errorf("%w: vector index %d of %d", ErrOutOfBounds, i, v.n)
	}
	elem := v.pos + flatbuffers.UOffsetT(i)*flatbuffers.SizeUOffsetT
	var r Record
	r.tab.Bytes = v.tab.Bytes
	r.tab.Pos = v.tab.Indirect(elem)
	return r, nil
}

// Guard converts the index panics FlatBuffers accessors raise on corrupt
// buffers into ErrOutOfBounds. Decode entry points defer it on a named
// error return:
//
//	func decode(buf []byte) (err error) {
//		defer wire.Guard(&err)
//		...
//	}
//
// Panics that are not runtime errors are re-raised.
func Guard(err *error) {
	switch r := recover().(type) {
	case nil:
	case runtime.Error:
		*err = fmt.Errorf("%w: %v", ErrOutOfBounds, r)
	default:
		panic(r)
	}
}
