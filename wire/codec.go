package wire

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Frame is a decoded inbound message: its type id plus the decoded
// camelCase-keyed body map, ready for a dispatcher to re-decode into a
// concrete struct.
type Frame struct {
	Type Type
	Body map[string]interface{}
}

// Decode parses a raw byte frame into its type id and MessagePack body.
// A frame shorter than one byte is malformed; a zero-length body (bare
// type byte) decodes to a nil body map, which callers must handle as
// "no fields present" rather than an error.
func Decode(raw []byte) (Frame, error) {
	if len(raw) == 0 {
		return Frame{}, fmt.Errorf("wire: empty frame")
	}
	f := Frame{Type: Type(raw[0])}
	if len(raw) == 1 {
		return f, nil
	}
	if err := msgpack.Unmarshal(raw[1:], &f.Body); err != nil {
		return Frame{}, fmt.Errorf("wire: decode body for type 0x%02x: %w", raw[0], err)
	}
	return f, nil
}

// DecodeInto parses a raw frame's body directly into dst, a pointer to
// a struct tagged with `msgpack:"..."` camelCase field names.
func DecodeInto(raw []byte, dst interface{}) (Type, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("wire: empty frame")
	}
	typ := Type(raw[0])
	if len(raw) == 1 {
		return typ, nil
	}
	if err := msgpack.Unmarshal(raw[1:], dst); err != nil {
		return 0, fmt.Errorf("wire: decode body for type 0x%02x: %w", raw[0], err)
	}
	return typ, nil
}

// Encode builds a wire frame from a type id and a body value (a struct
// with `msgpack` tags, or a map[string]interface{}).
func Encode(typ Type, body interface{}) ([]byte, error) {
	payload, err := msgpack.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("wire: encode type 0x%02x: %w", typ, err)
	}
	out := make([]byte, 0, len(payload)+1)
	out = append(out, byte(typ))
	out = append(out, payload...)
	return out, nil
}

// MustEncode is Encode for call sites that construct the body
// themselves and know it cannot fail to marshal (no channels, funcs, or
// unsupported types). It panics on error, which should only ever
// indicate a programming mistake in the body shape, never bad input.
func MustEncode(typ Type, body interface{}) []byte {
	out, err := Encode(typ, body)
	if err != nil {
		panic(err)
	}
	return out
}
