package logging

import "github.com/rs/zerolog"

// DebugLevel is the library-facing verbosity scale.
type DebugLevel int

const (
	DebugNone DebugLevel = iota
	DebugError
	DebugWarn
	DebugInfo
	DebugDetail
	DebugSpew
)

func (l DebugLevel) String() string {
	switch l {
	case DebugNone:
		return "none"
	case DebugError:
		return "error"
	case DebugWarn:
		return "warn"
	case DebugInfo:
		return "info"
	case DebugDetail:
		return "detail"
	case DebugSpew:
		return "spew"
	default:
		return "unknown"
	}
}

// Clamp pins out-of-range values to the nearest defined level.
func (l DebugLevel) Clamp() DebugLevel {
	if l < DebugNone {
		return DebugNone
	}
	if l > DebugSpew {
		return DebugSpew
	}
	return l
}

// Zerolog maps the level onto the zerolog scale.
func (l DebugLevel) Zerolog() zerolog.Level {
	switch l.Clamp() {
	case DebugNone:
		return zerolog.Disabled
	case DebugError:
		return zerolog.ErrorLevel
	case DebugWarn:
		return zerolog.WarnLevel
	case DebugInfo:
		return zerolog.InfoLevel
	case DebugDetail:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// FromZerolog is the inverse of DebugLevel.Zerolog.
func FromZerolog(l zerolog.Level) DebugLevel {
	switch {
	case l >= zerolog.Disabled:
		return DebugNone
	case l >= zerolog.ErrorLevel:
		return DebugError
	case l == zerolog.WarnLevel:
		return DebugWarn
	case l == zerolog.InfoLevel:
		return DebugInfo
	case l == zerolog.DebugLevel:
		return DebugDetail
	default:
		return DebugSpew
	}
}

// GetDebugLevel reports the process-wide verbosity.
func GetDebugLevel() DebugLevel {
	return FromZerolog(zerolog.GlobalLevel())
}

// SetDebugLevel changes the process-wide verbosity and returns the level
// actually applied.
func SetDebugLevel(l DebugLevel) DebugLevel {
	l = l.Clamp()
	zerolog.SetGlobalLevel(l.Zerolog())
	return l
}
