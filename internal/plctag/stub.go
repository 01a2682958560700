// Package plctag emulates the client-facing contract of a PLC tag library
// against an in-memory registry.
//
// Every access runs synchronously: the tag is looked up under the registry's
// structural lock, then its own lock is held for the whole access, callback
// dispatch included. A callback therefore must not call back into an
// operation on the same tag; doing so deadlocks.
//
// Read timeouts are validated and otherwise ignored; nothing here ever waits
// on a device.
package plctag

import (
	"fmt"
	"time"

	"github.com/danmuck/plcstub/internal/attr"
	"github.com/danmuck/plcstub/internal/logging"
	"github.com/danmuck/plcstub/internal/observability"
	"github.com/danmuck/plcstub/internal/registry"
	"github.com/danmuck/plcstub/internal/tag"
	"github.com/rs/zerolog/log"
)

// Stub is the access orchestrator over one registry.
type Stub struct {
	reg *registry.Registry
}

type Option func(*Stub)

// WithRegistry shares an existing registry instead of creating one.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Stub) { s.reg = r }
}

// New creates a stub with an empty registry unless one is supplied.
func New(opts ...Option) *Stub {
	s := &Stub{}
	for _, opt := range opts {
		opt(s)
	}
	if s.reg == nil {
		s.reg = registry.New()
	}
	observability.RegisterMetrics()
	return s
}

// Registry exposes the underlying index.
func (s *Stub) Registry() *registry.Registry {
	return s.reg
}

// CheckLibVersion always accepts; the stub emulates every version.
func (s *Stub) CheckLibVersion(major, minor, patch int) bool {
	return true
}

func (s *Stub) GetDebugLevel() logging.DebugLevel {
	return logging.GetDebugLevel()
}

func (s *Stub) SetDebugLevel(level logging.DebugLevel) logging.DebugLevel {
	return logging.SetDebugLevel(level)
}

// Create parses attrs and inserts a new tag, returning its id.
func (s *Stub) Create(attrs string) (id int32, err error) {
	defer s.record("create", time.Now(), &err)

	a, err := attr.Parse(attrs)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBadParam, err)
	}
	node, err := s.reg.AllocateAndInsert(a.Name, a.ElemSize, a.ElemCount)
	if err != nil {
		log.Error().Err(err).Str("name", a.Name).Msg("plctag.Create allocation failed")
		return 0, fmt.Errorf("%w: %w", ErrNoMem, err)
	}
	observability.SetLiveTags(s.reg.Len())
	log.Debug().
		Int32("tag", node.ID).
		Str("name", node.Name).
		Int("elem_size", node.ElemSize).
		Int("elem_count", node.ElemCount).
		Msg("plctag.Create")
	return node.ID, nil
}

// Read emulates a device read: it fires ReadStarted then ReadCompleted. No
// bytes move since the buffer is already local.
func (s *Stub) Read(id int32, timeout int) (err error) {
	defer s.record("read", time.Now(), &err)

	if timeout < 0 {
		log.Warn().Int("timeout", timeout).Msg("timeout must not be negative")
		return fmt.Errorf("read tag %d timeout %d: %w", id, timeout, ErrBadParam)
	}
	node, err := s.lookup("read", id)
	if err != nil {
		return err
	}
	l := node.Lock()
	defer l.Release()
	fire(l, tag.EventReadStarted, tag.StatusOK)
	fire(l, tag.EventReadCompleted, tag.StatusOK)
	return nil
}

// Status reports StatusOK for a known tag. The stub never models in-flight
// operations.
func (s *Stub) Status(id int32) tag.Status {
	if _, ok := s.reg.Lookup(id); !ok {
		log.Warn().Int32("tag", id).Msg("unknown tag")
		return tag.StatusNotFound
	}
	return tag.StatusOK
}

// Size returns the tag's buffer length in bytes.
func (s *Stub) Size(id int32) (int, error) {
	node, err := s.lookup("size", id)
	if err != nil {
		return 0, err
	}
	return node.Size(), nil
}

// Info describes a tag without touching its buffer.
type Info struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	ElemSize  int    `json:"elem_size"`
	ElemCount int    `json:"elem_count"`
	Size      int    `json:"size"`
}

func infoOf(n *tag.Node) Info {
	return Info{ID: n.ID, Name: n.Name, ElemSize: n.ElemSize, ElemCount: n.ElemCount, Size: n.Size()}
}

// Describe returns the tag's identity and dimensions.
func (s *Stub) Describe(id int32) (Info, error) {
	node, err := s.lookup("describe", id)
	if err != nil {
		return Info{}, err
	}
	return infoOf(node), nil
}

// Tags lists every tag in id order.
func (s *Stub) Tags() []Info {
	out := make([]Info, 0, s.reg.Len())
	s.reg.Ascend(func(n *tag.Node) bool {
		out = append(out, infoOf(n))
		return true
	})
	return out
}

// Snapshot copies the tag's buffer.
func (s *Stub) Snapshot(id int32) (Info, []byte, error) {
	node, err := s.lookup("snapshot", id)
	if err != nil {
		return Info{}, nil, err
	}
	return infoOf(node), node.Snapshot(), nil
}

// RegisterCallback installs cb, replacing any previous callback. cb runs with
// the tag locked and must not operate on the same tag.
func (s *Stub) RegisterCallback(id int32, cb tag.Callback) error {
	node, err := s.lookup("register_callback", id)
	if err != nil {
		return err
	}
	node.SetCallback(cb)
	return nil
}

// UnregisterCallback clears the tag's callback.
func (s *Stub) UnregisterCallback(id int32) error {
	return s.RegisterCallback(id, nil)
}

func (s *Stub) lookup(op string, id int32) (*tag.Node, error) {
	node, ok := s.reg.Lookup(id)
	if !ok {
		log.Warn().Str("op", op).Int32("tag", id).Msg("unknown tag")
		return nil, fmt.Errorf("%s tag %d: %w", op, id, ErrNotFound)
	}
	return node, nil
}

func (s *Stub) record(op string, start time.Time, err *error) {
	observability.RecordTagOp(op, StatusOf(*err).String(), time.Since(start))
}

func fire(l *tag.Locked, ev tag.Event, status tag.Status) {
	if l.Fire(ev, status) {
		log.Trace().Stringer("event", ev).Stringer("status", status).Msg("plctag callback")
		observability.RecordCallbackEvent(ev.String())
	}
}
