package codec

import "github.com/fxamacker/cbor/v2"

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// CBOR constructs the CBOR codec with canonical encoding options, so
// port maps serialize to identical bytes regardless of insertion order.
func CBOR() (Codec, error) {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, err
	}
	return cborCodec{enc: enc, dec: dec}, nil
}

func (c cborCodec) ContentType() string { return ContentCBOR }

func (c cborCodec) Marshal(v any) ([]byte, error) { return c.enc.Marshal(v) }

func (c cborCodec) Unmarshal(data []byte, v any) error { return c.dec.Unmarshal(data, v) }
