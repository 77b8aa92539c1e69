// Package wire adapts the FlatBuffers builder and table primitives to the
// narrow record shapes interface descriptors are made of: records holding
// string fields and vectors of record offsets, addressed by field index.
//
// Construction goes through Builder (start record, offset fields, end
// record), reading through Record and RecordVector. Reads assume the
// buffer they were handed is well formed; on truncated or corrupt input
// they panic the way the underlying FlatBuffers accessors do, and decode
// entry points convert that into an error by deferring Guard.
package wire

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// Offset locates a finished record, string, or vector inside the buffer
// under construction.
type Offset = flatbuffers.UOffsetT

// Builder wraps a FlatBuffers builder with the construction calls
// descriptor records need. The zero value is not usable; call NewBuilder.
type Builder struct {
	fb *flatbuffers.Builder
}

// NewBuilder returns a Builder with a small initial scratch buffer.
func NewBuilder() *Builder {
	return &Builder{fb: flatbuffers.NewBuilder(256)}
}

// CreateString writes s into the buffer and returns its offset. Strings
// and vectors must be created before the record referring to them is
// started.
func (b *Builder) CreateString(s string) Offset { return b.fb.CreateString(s) }

// StartRecord opens a record with room for numFields fields.
func (b *Builder) StartRecord(numFields int) { b.fb.StartObject(numFields) }

// Field stores off in the given field slot of the record under
// construction. A zero offset leaves the field absent.
func (b *Builder) Field(field int, off Offset) {
	b.fb.PrependUOffsetTSlot(field, off, 0)
}

// EndRecord closes the record under construction and returns its offset.
func (b *Builder) EndRecord() Offset { return b.fb.EndObject() }

// OffsetVector writes a vector of record offsets. Elements read back in
// the order given here; insertion-order round trips depend on that.
func (b *Builder) OffsetVector(offs []Offset) Offset {
	b.fb.StartVector(flatbuffers.SizeUOffsetT, len(offs), flatbuffers.SizeUOffsetT)
	for i := len(offs) - 1; i >= 0; i-- {
		b.fb.PrependUOffsetT(offs[i])
	}
	return b.fb.EndVector(len(offs))
}

// Finish declares root as the buffer's root record and returns the
// finished bytes. Reset before building another descriptor.
func (b *Builder) Finish(root Offset) []byte {
	b.fb.Finish(root)
	return b.fb.FinishedBytes()
}

// Reset discards everything built so far so the builder can be reused.
func (b *Builder) Reset() { b.fb.Reset() }
