package tlv

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeFieldsRoundTripPreservesUnknown(t *testing.T) {
	in := []Field{
		StringField(FieldTagName, "DUMMY_AQUA_DATA_Foo"),
		{ID: 9999, Type: TypeBytes, Value: []byte{0xAA, 0xBB}}, // unknown field id
	}
	b := EncodeFields(in)
	out, err := DecodeFields(b)
	if err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(out))
	}
	if out[1].ID != 9999 || out[1].Type != TypeBytes || !bytes.Equal(out[1].Value, []byte{0xAA, 0xBB}) {
		t.Fatalf("unknown field not preserved: %+v", out[1])
	}
}

func TestDecodeFieldsMalformedHeaderIsDeterministic(t *testing.T) {
	_, err := DecodeFields([]byte{1, 2, 3})
	if !errors.Is(err, ErrShortFieldHeader) {
		t.Fatalf("expected ErrShortFieldHeader, got %v", err)
	}
}

func TestDecodeFieldsMalformedLengthIsDeterministic(t *testing.T) {
	// id=1, type=string, len=5, value only 2 bytes
	payload := []byte{0, 1, TypeString, 0, 0, 0, 5, 'a', 'b'}
	_, err := DecodeFields(payload)
	if !errors.Is(err, ErrShortFieldValue) {
		t.Fatalf("expected ErrShortFieldValue, got %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	in := Snapshot{ID: -3, Name: "DUMMY_AQUA_DATA_Foo", ElemSize: 4, ElemCount: 2, Data: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	out, err := DecodeSnapshot(EncodeSnapshot(in))
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if out.ID != in.ID || out.Name != in.Name || out.ElemSize != in.ElemSize || out.ElemCount != in.ElemCount {
		t.Fatalf("snapshot header mismatch: got %+v want %+v", out, in)
	}
	if !bytes.Equal(out.Data, in.Data) {
		t.Fatalf("snapshot data mismatch: got %x want %x", out.Data, in.Data)
	}
}

func TestDecodeSnapshotMissingField(t *testing.T) {
	payload := EncodeFields([]Field{I32Field(FieldTagID, 1)})
	if _, err := DecodeSnapshot(payload); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestDecodeSnapshotTypeMismatch(t *testing.T) {
	payload := EncodeFields([]Field{U32Field(FieldTagID, 1)})
	if _, err := DecodeSnapshot(payload); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}
