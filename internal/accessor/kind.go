package accessor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownKind  = errors.New("accessor: unknown kind")
	ErrInvalidValue = errors.New("accessor: invalid value")
)

// Kind names a Value type at runtime.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBit
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
)

type kindInfo struct {
	name string
	size int
}

var kinds = [...]kindInfo{
	KindInvalid: {"invalid", 0},
	KindBit:     {"bit", 1},
	KindInt8:    {"int8", 1},
	KindUint8:   {"uint8", 1},
	KindInt16:   {"int16", 2},
	KindUint16:  {"uint16", 2},
	KindInt32:   {"int32", 4},
	KindUint32:  {"uint32", 4},
	KindInt64:   {"int64", 8},
	KindUint64:  {"uint64", 8},
	KindFloat32: {"float32", 4},
	KindFloat64: {"float64", 8},
}

// Kinds lists every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds)-1)
	for k := KindBit; int(k) < len(kinds); k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a kind by name, case-insensitively.
func ParseKind(raw string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, k := range Kinds() {
		if kinds[k].name == name {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

func (k Kind) Valid() bool {
	return k > KindInvalid && int(k) < len(kinds)
}

func (k Kind) String() string {
	if !k.Valid() {
		return kinds[KindInvalid].name
	}
	return kinds[k].name
}

// Size returns the encoded width in bytes, or 0 for an invalid kind.
func (k Kind) Size() int {
	if !k.Valid() {
		return 0
	}
	return kinds[k].size
}

// Parse converts a textual value into the Go type the kind names.
func (k Kind) Parse(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	var (
		v   any
		err error
	)
	switch k {
	case KindBit:
		var b bool
		b, err = strconv.ParseBool(raw)
		v = Bit(b)
	case KindInt8:
		var n int64
		n, err = strconv.ParseInt(raw, 0, 8)
		v = int8(n)
	case KindUint8:
		var n uint64
		n, err = strconv.ParseUint(raw, 0, 8)
		v = uint8(n)
	case KindInt16:
		var n int64
		n, err = strconv.ParseInt(raw, 0, 16)
		v = int16(n)
	case KindUint16:
		var n uint64
		n, err = strconv.ParseUint(raw, 0, 16)
		v = uint16(n)
	case KindInt32:
		var n int64
		n, err = strconv.ParseInt(raw, 0, 32)
		v = int32(n)
	case KindUint32:
		var n uint64
		n, err = strconv.ParseUint(raw, 0, 32)
		v = uint32(n)
	case KindInt64:
		v, err = strconv.ParseInt(raw, 0, 64)
	case KindUint64:
		v, err = strconv.ParseUint(raw, 0, 64)
	case KindFloat32:
		var f float64
		f, err = strconv.ParseFloat(raw, 32)
		v = float32(f)
	case KindFloat64:
		v, err = strconv.ParseFloat(raw, 64)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, k, raw, err)
	}
	return v, nil
}
