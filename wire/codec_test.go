package wire

import "testing"

func TestRoundTripInput(t *testing.T) {
	in := InputBody{Seq: 7, Forward: 0.5, Right: -1}
	raw, err := Encode(TypeInput, in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out InputBody
	typ, err := DecodeInto(raw, &out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if typ != TypeInput {
		t.Fatalf("type mismatch: got 0x%02x", typ)
	}
	if out != in {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestDecodeEmptyFrameErrors(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Fatal("expected error on empty frame")
	}
}

func TestDecodeBareTypeByte(t *testing.T) {
	f, err := Decode([]byte{byte(TypePing)})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Type != TypePing || f.Body != nil {
		t.Fatalf("unexpected frame: %+v", f)
	}
}

func TestDisconnectedSentinelIsReservedByte(t *testing.T) {
	if Disconnected != 0xFF {
		t.Fatalf("sentinel changed: 0x%02x", Disconnected)
	}
}
