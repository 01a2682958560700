// Package attr parses tag creation attribute strings of the form
// "protocol&name=Foo&elem_size=4&elem_count=10".
package attr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	Separator = "&"

	KeyName      = "name"
	KeyElemSize  = "elem_size"
	KeyElemCount = "elem_count"

	// TokenProtocol is the only bare token accepted without a value.
	TokenProtocol = "protocol"

	DefaultElemSize  = 2
	DefaultElemCount = 1
)

var (
	ErrMalformed   = errors.New("attr: malformed attribute")
	ErrMissingName = errors.New("attr: missing name")
	ErrInvalidSize = errors.New("attr: invalid size")
)

// Attributes are the validated creation parameters.
type Attributes struct {
	Name      string
	ElemSize  int
	ElemCount int
}

// Size is the buffer length the attributes describe.
func (a Attributes) Size() int {
	return a.ElemSize * a.ElemCount
}

// Parse splits raw into tokens and validates the recognized keys. Unknown
// keys are ignored; a repeated key overwrites the earlier value.
func Parse(raw string) (Attributes, error) {
	out := Attributes{ElemSize: DefaultElemSize, ElemCount: DefaultElemCount}
	seen := make(map[string]bool, 3)
	var haveName bool

	for _, kv := range strings.Split(raw, Separator) {
		if kv == "" {
			continue
		}
		log.Trace().Str("kv", kv).Msg("attr.Parse pair")

		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			if kv == TokenProtocol {
				continue
			}
			log.Warn().Str("attr", kv).Msg("missing '=' in non-protocol attribute")
			return Attributes{}, fmt.Errorf("%w: %q", ErrMalformed, kv)
		}

		switch key {
		case KeyName, KeyElemSize, KeyElemCount:
			if seen[key] {
				log.Warn().Str("attr", key).Msg("overwriting attribute")
			}
			seen[key] = true
		default:
			continue
		}

		switch key {
		case KeyName:
			out.Name = val
			haveName = true
		case KeyElemSize:
			n, err := parseSize(key, val)
			if err != nil {
				return Attributes{}, err
			}
			out.ElemSize = n
		case KeyElemCount:
			n, err := parseSize(key, val)
			if err != nil {
				return Attributes{}, err
			}
			out.ElemCount = n
		}
	}

	if !haveName || out.Name == "" {
		log.Warn().Str("attr", KeyName).Msg("missing attribute")
		return Attributes{}, ErrMissingName
	}
	if out.ElemSize > math.MaxInt/out.ElemCount {
		return Attributes{}, fmt.Errorf("%w: %d x %d overflows", ErrInvalidSize, out.ElemSize, out.ElemCount)
	}
	return out, nil
}

func parseSize(key, val string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n <= 0 {
		log.Warn().Str("attr", key).Str("value", val).Msg("invalid size attribute")
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidSize, key, val)
	}
	return n, nil
}
