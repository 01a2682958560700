// Package accessor implements typed little-endian views into tag buffers.
//
// Get and Set never check bounds and never lock. Callers check the offset
// against the buffer once, under the owning tag's lock, before calling in.
package accessor

import (
	"encoding/binary"
	"math"
)

// Bit is the boolean-like tag value. It occupies one byte; any non-zero byte
// reads as true.
type Bit bool

// Value is the closed set of types a tag buffer can be viewed as.
type Value interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 |
		float32 | float64 | Bit
}

// SizeOf returns the encoded width of T in bytes.
func SizeOf[T Value]() int {
	var zero T
	switch any(zero).(type) {
	case int8, uint8, Bit:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	default:
		return 8
	}
}

// Get decodes the value of type T stored at offset.
func Get[T Value](buf []byte, offset int) T {
	var out T
	b := buf[offset:]
	switch p := any(&out).(type) {
	case *int8:
		*p = int8(b[0])
	case *uint8:
		*p = b[0]
	case *Bit:
		*p = b[0] != 0
	case *int16:
		*p = int16(binary.LittleEndian.Uint16(b))
	case *uint16:
		*p = binary.LittleEndian.Uint16(b)
	case *int32:
		*p = int32(binary.LittleEndian.Uint32(b))
	case *uint32:
		*p = binary.LittleEndian.Uint32(b)
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(b))
	case *int64:
		*p = int64(binary.LittleEndian.Uint64(b))
	case *uint64:
		*p = binary.LittleEndian.Uint64(b)
	case *float64:
		*p = math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return out
}

// Set encodes v at offset.
func Set[T Value](buf []byte, offset int, v T) {
	b := buf[offset:]
	switch x := any(v).(type) {
	case int8:
		b[0] = byte(x)
	case uint8:
		b[0] = x
	case Bit:
		if x {
			b[0] = 1
		} else {
			b[0] = 0
		}
	case int16:
		binary.LittleEndian.PutUint16(b, uint16(x))
	case uint16:
		binary.LittleEndian.PutUint16(b, x)
	case int32:
		binary.LittleEndian.PutUint32(b, uint32(x))
	case uint32:
		binary.LittleEndian.PutUint32(b, x)
	case float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(x))
	case int64:
		binary.LittleEndian.PutUint64(b, uint64(x))
	case uint64:
		binary.LittleEndian.PutUint64(b, x)
	case float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(x))
	}
}
