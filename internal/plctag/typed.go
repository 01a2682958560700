package plctag

import "github.com/danmuck/plcstub/internal/accessor"

// Typed shorthands over Get and Set, one pair per value type.

func (s *Stub) GetBit(id int32, offset int) (accessor.Bit, error) {
	return Get[accessor.Bit](s, id, offset)
}

func (s *Stub) SetBit(id int32, offset int, v accessor.Bit) error {
	return Set(s, id, offset, v)
}

func (s *Stub) GetInt8(id int32, offset int) (int8, error) {
	return Get[int8](s, id, offset)
}

func (s *Stub) SetInt8(id int32, offset int, v int8) error {
	return Set(s, id, offset, v)
}

func (s *Stub) GetUint8(id int32, offset int) (uint8, error) {
	return Get[uint8](s, id, offset)
}

func (s *Stub) SetUint8(id int32, offset int, v uint8) error {
	return Set(s, id, offset, v)
}

func (s *Stub) GetInt16(id int32, offset int) (int16, error) {
	return Get[int16](s, id, offset)
}

func (s *Stub) SetInt16(id int32, offset int, v int16) error {
	return Set(s, id, offset, v)
}

func (s *Stub) GetUint16(id int32, offset int) (uint16, error) {
	return Get[uint16](s, id, offset)
}

func (s *Stub) SetUint16(id int32, offset int, v uint16) error {
	return Set(s, id, offset, v)
}

func (s *Stub) GetInt32(id int32, offset int) (int32, error) {
	return Get[int32](s, id, offset)
}

func (s *Stub) SetInt32(id int32, offset int, v int32) error {
	return Set(s, id, offset, v)
}

func (s *Stub) GetUint32(id int32, offset int) (uint32, error) {
	return Get[uint32](s, id, offset)
}

func (s *Stub) SetUint32(id int32, offset int, v uint32) error {
	return Set(s, id, offset, v)
}

func (s *Stub) GetInt64(id int32, offset int) (int64, error) {
	return Get[int64](s, id, offset)
}

func (s *Stub) SetInt64(id int32, offset int, v int64) error {
	return Set(s, id, offset, v)
}

func (s *Stub) GetUint64(id int32, offset int) (uint64, error) {
	return Get[uint64](s, id, offset)
}

func (s *Stub) SetUint64(id int32, offset int, v uint64) error {
	return Set(s, id, offset, v)
}

func (s *Stub) GetFloat32(id int32, offset int) (float32, error) {
	return Get[float32](s, id, offset)
}

func (s *Stub) SetFloat32(id int32, offset int, v float32) error {
	return Set(s, id, offset, v)
}

func (s *Stub) GetFloat64(id int32, offset int) (float64, error) {
	return Get[float64](s, id, offset)
}

func (s *Stub) SetFloat64(id int32, offset int, v float64) error {
	return Set(s, id, offset, v)
}
