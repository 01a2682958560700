package tlv

import "fmt"

// Snapshot field ids.
const (
	FieldTagID     uint16 = 1
	FieldTagName   uint16 = 2
	FieldElemSize  uint16 = 3
	FieldElemCount uint16 = 4
	FieldData      uint16 = 5
)

// Snapshot is a point-in-time copy of one tag.
type Snapshot struct {
	ID        int32
	Name      string
	ElemSize  uint32
	ElemCount uint32
	Data      []byte
}

func EncodeSnapshot(s Snapshot) []byte {
	return EncodeFields([]Field{
		I32Field(FieldTagID, s.ID),
		StringField(FieldTagName, s.Name),
		U32Field(FieldElemSize, s.ElemSize),
		U32Field(FieldElemCount, s.ElemCount),
		BytesField(FieldData, s.Data),
	})
}

// DecodeSnapshot parses a snapshot document. Unknown field ids are skipped.
func DecodeSnapshot(payload []byte) (Snapshot, error) {
	fields, err := DecodeFields(payload)
	if err != nil {
		return Snapshot{}, err
	}

	var out Snapshot
	get := func(id uint16, typ uint8) (Field, error) {
		f, ok := GetField(fields, id)
		if !ok {
			return Field{}, fmt.Errorf("%w: %d", ErrMissingField, id)
		}
		return f, MustType(f, typ)
	}

	f, err := get(FieldTagID, TypeI32)
	if err != nil {
		return Snapshot{}, err
	}
	id, err := U32FromBytes(f.Value)
	if err != nil {
		return Snapshot{}, err
	}
	out.ID = int32(id)

	if f, err = get(FieldTagName, TypeString); err != nil {
		return Snapshot{}, err
	}
	out.Name = string(f.Value)

	if f, err = get(FieldElemSize, TypeU32); err != nil {
		return Snapshot{}, err
	}
	if out.ElemSize, err = U32FromBytes(f.Value); err != nil {
		return Snapshot{}, err
	}

	if f, err = get(FieldElemCount, TypeU32); err != nil {
		return Snapshot{}, err
	}
	if out.ElemCount, err = U32FromBytes(f.Value); err != nil {
		return Snapshot{}, err
	}

	if f, err = get(FieldData, TypeBytes); err != nil {
		return Snapshot{}, err
	}
	out.Data = f.Value
	return out, nil
}
