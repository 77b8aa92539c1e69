package codec

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cpritcha/meillionen/pkg/call"
)

// Format identifies the request serialization. It travels as a single
// leading byte so receivers can pick a codec before parsing.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatCBOR
	FormatProto
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	case FormatProto:
		return "proto"
	default:
		return "unknown"
	}
}

// ContentType maps the format to its registry content type.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return ContentJSON
	case FormatCBOR:
		return ContentCBOR
	case FormatProto:
		return ContentProto
	default:
		return ContentUnknown
	}
}

// ParseFormat resolves a format name from config or flags.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "cbor":
		return FormatCBOR, nil
	case "proto", "protobuf":
		return FormatProto, nil
	default:
		return FormatUnknown, fmt.Errorf("codec: unknown format %q", s)
	}
}

// For resolves the codec for a format from the registry.
func For(reg *Registry, f Format) (Codec, error) {
	ct := f.ContentType()
	c := reg.Get(ct)
	if c == nil {
		return nil, fmt.Errorf("codec: no codec registered for %s", ct)
	}
	return c, nil
}

// EncodeRequest marshals a request and prefixes the format byte.
//
// Protobuf has no generated message for requests, so they are bridged
// through structpb. Numeric port values come back as float64 on that
// path, same as JSON.
func EncodeRequest(reg *Registry, f Format, req *call.Request) ([]byte, error) {
	c, err := For(reg, f)
	if err != nil {
		return nil, err
	}
	var body []byte
	if f == FormatProto {
		s, err := requestStruct(req)
		if err != nil {
			return nil, err
		}
		body, err = c.Marshal(s)
		if err != nil {
			return nil, err
		}
	} else {
		body, err = c.Marshal(req)
		if err != nil {
			return nil, err
		}
	}
	out := make([]byte, 1+len(body))
	out[0] = byte(f)
	copy(out[1:], body)
	return out, nil
}

// DecodeRequest splits the format byte and unmarshals the remainder.
func DecodeRequest(reg *Registry, payload []byte) (*call.Request, Format, error) {
	if len(payload) == 0 {
		return nil, FormatUnknown, errors.New("codec: empty request payload")
	}
	f := Format(payload[0])
	c, err := For(reg, f)
	if err != nil {
		return nil, f, err
	}
	if f == FormatProto {
		var s structpb.Struct
		if err := c.Unmarshal(payload[1:], &s); err != nil {
			return nil, f, err
		}
		return structRequest(&s), f, nil
	}
	var req call.Request
	if err := c.Unmarshal(payload[1:], &req); err != nil {
		return nil, f, err
	}
	return &req, f, nil
}

func requestStruct(req *call.Request) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"class_name":  req.ClassName,
		"method_name": req.MethodName,
		"sinks":       map[string]any(req.Sinks),
		"sources":     map[string]any(req.Sources),
	})
}

func structRequest(s *structpb.Struct) *call.Request {
	m := s.AsMap()
	req := &call.Request{}
	if v, ok := m["class_name"].(string); ok {
		req.ClassName = v
	}
	if v, ok := m["method_name"].(string); ok {
		req.MethodName = v
	}
	if v, ok := m["sinks"].(map[string]any); ok {
		req.Sinks = call.Ports(v)
	}
	if v, ok := m["sources"].(map[string]any); ok {
		req.Sources = call.Ports(v)
	}
	return req
}
