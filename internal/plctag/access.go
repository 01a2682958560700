package plctag

import (
	"fmt"
	"time"

	"github.com/danmuck/plcstub/internal/accessor"
	"github.com/danmuck/plcstub/internal/tag"
	"github.com/rs/zerolog/log"
)

// Get reads the T stored at byte offset of tag id. The sequence under the
// tag lock is ReadStarted, bounds check, then ReadCompleted, or Aborted with
// StatusBadParam when the value does not fit inside the buffer.
func Get[T accessor.Value](s *Stub, id int32, offset int) (T, error) {
	var out T
	err := access[T](s, "get", id, offset, tag.EventReadStarted, tag.EventReadCompleted, func(buf []byte) {
		out = accessor.Get[T](buf, offset)
	})
	return out, err
}

// Set writes v at byte offset of tag id, bracketed by WriteStarted and
// WriteCompleted, or Aborted on a bounds failure.
func Set[T accessor.Value](s *Stub, id int32, offset int, v T) error {
	return access[T](s, "set", id, offset, tag.EventWriteStarted, tag.EventWriteCompleted, func(buf []byte) {
		accessor.Set(buf, offset, v)
	})
}

func access[T accessor.Value](
	s *Stub,
	op string,
	id int32,
	offset int,
	started, completed tag.Event,
	apply func(buf []byte),
) (err error) {
	defer s.record(op, time.Now(), &err)

	node, err := s.lookup(op, id)
	if err != nil {
		return err
	}

	l := node.Lock()
	defer l.Release()

	fire(l, started, tag.StatusOK)
	if !inBounds(node.Size(), offset, accessor.SizeOf[T]()) {
		log.Warn().
			Str("op", op).
			Int32("tag", id).
			Int("offset", offset).
			Int("size", node.Size()).
			Msg("offset out of bounds")
		fire(l, tag.EventAborted, tag.StatusBadParam)
		return fmt.Errorf("%s tag %d offset %d: %w", op, id, offset, ErrBadParam)
	}
	apply(l.Buffer())
	fire(l, completed, tag.StatusOK)
	return nil
}

// inBounds reports whether width bytes starting at offset fit in size.
func inBounds(size, offset, width int) bool {
	return offset >= 0 && offset < size && width <= size-offset
}
