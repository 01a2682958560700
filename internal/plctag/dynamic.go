package plctag

import (
	"fmt"

	"github.com/danmuck/plcstub/internal/accessor"
)

// GetKind reads a value whose type is only known at runtime. It goes through
// the same generic path as Get.
func (s *Stub) GetKind(id int32, k accessor.Kind, offset int) (any, error) {
	switch k {
	case accessor.KindBit:
		return Get[accessor.Bit](s, id, offset)
	case accessor.KindInt8:
		return Get[int8](s, id, offset)
	case accessor.KindUint8:
		return Get[uint8](s, id, offset)
	case accessor.KindInt16:
		return Get[int16](s, id, offset)
	case accessor.KindUint16:
		return Get[uint16](s, id, offset)
	case accessor.KindInt32:
		return Get[int32](s, id, offset)
	case accessor.KindUint32:
		return Get[uint32](s, id, offset)
	case accessor.KindInt64:
		return Get[int64](s, id, offset)
	case accessor.KindUint64:
		return Get[uint64](s, id, offset)
	case accessor.KindFloat32:
		return Get[float32](s, id, offset)
	case accessor.KindFloat64:
		return Get[float64](s, id, offset)
	default:
		return nil, fmt.Errorf("get tag %d: %w: %w", id, ErrBadParam, accessor.ErrUnknownKind)
	}
}

// SetKind parses raw as kind k and writes it. A value that does not parse is
// rejected before the tag is touched, so no events fire for it.
func (s *Stub) SetKind(id int32, k accessor.Kind, offset int, raw string) error {
	v, err := k.Parse(raw)
	if err != nil {
		return fmt.Errorf("set tag %d: %w: %w", id, ErrBadParam, err)
	}
	switch x := v.(type) {
	case accessor.Bit:
		return Set(s, id, offset, x)
	case int8:
		return Set(s, id, offset, x)
	case uint8:
		return Set(s, id, offset, x)
	case int16:
		return Set(s, id, offset, x)
	case uint16:
		return Set(s, id, offset, x)
	case int32:
		return Set(s, id, offset, x)
	case uint32:
		return Set(s, id, offset, x)
	case int64:
		return Set(s, id, offset, x)
	case uint64:
		return Set(s, id, offset, x)
	case float32:
		return Set(s, id, offset, x)
	case float64:
		return Set(s, id, offset, x)
	default:
		return fmt.Errorf("set tag %d: %w: unsupported value %T", id, ErrBadParam, v)
	}
}
