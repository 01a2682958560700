package plctag

import (
	"errors"

	"github.com/danmuck/plcstub/internal/tag"
)

var (
	ErrBadParam = errors.New("plctag: bad parameter")
	ErrNotFound = errors.New("plctag: tag not found")
	ErrNoMem    = errors.New("plctag: out of resources")
)

// Result codes, re-exported so callers need not import the tag package.
const (
	StatusOK       = tag.StatusOK
	StatusBadParam = tag.StatusBadParam
	StatusNotFound = tag.StatusNotFound
	StatusNoMem    = tag.StatusNoMem
)

// StatusOf maps an error returned by this package to its numeric code. A nil
// error is StatusOK.
func StatusOf(err error) tag.Status {
	switch {
	case err == nil:
		return tag.StatusOK
	case errors.Is(err, ErrBadParam):
		return tag.StatusBadParam
	case errors.Is(err, ErrNotFound):
		return tag.StatusNotFound
	default:
		// ErrNoMem, registry.ErrIDSpaceExhausted and anything unexpected.
		return tag.StatusNoMem
	}
}
