// Package codec serializes call requests for crossing process
// boundaries. Implementations are deterministic so the same request
// produces the same bytes on every host that shares a format.
package codec

// Content types for the supported request encodings.
const (
	ContentUnknown = "application/octet-stream"
	ContentJSON    = "application/json"
	ContentCBOR    = "application/cbor"
	ContentProto   = "application/x-protobuf"
)

// Codec defines a simple interface for marshaling typed messages.
type Codec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Registry maps content types to codecs.
type Registry struct{ byType map[string]Codec }

// NewRegistry constructs a registry preloaded with the codecs that need
// no initialization: JSON and Protobuf. CBOR is added explicitly once
// constructed, since building its modes can fail.
func NewRegistry() *Registry {
	r := &Registry{byType: make(map[string]Codec)}
	r.Register(JSON())
	r.Register(Proto())
	return r
}

// Register adds a codec, replacing any codec with the same content type.
func (r *Registry) Register(c Codec) { r.byType[c.ContentType()] = c }

// Get returns a codec by content type, or nil.
func (r *Registry) Get(contentType string) Codec { return r.byType[contentType] }
