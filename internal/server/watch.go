package server

import (
	"sync"
	"time"

	"github.com/danmuck/plcstub/internal/tag"
)

const defaultWatchDepth = 256

// EventRecord is one callback observation kept for HTTP clients.
type EventRecord struct {
	Seq    uint64    `json:"seq"`
	TagID  int32     `json:"tag_id"`
	Event  string    `json:"event"`
	Status string    `json:"status"`
	Code   int       `json:"code"`
	At     time.Time `json:"at"`
}

// watchLog is a bounded per-tag event history. It has its own mutex because
// its callback runs under the tag lock while HTTP readers do not hold it.
type watchLog struct {
	mu     sync.Mutex
	depth  int
	seq    uint64
	events []EventRecord
}

func (w *watchLog) callback(id int32, ev tag.Event, status tag.Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	w.events = append(w.events, EventRecord{
		Seq:    w.seq,
		TagID:  id,
		Event:  ev.String(),
		Status: status.String(),
		Code:   int(status),
		At:     time.Now(),
	})
	if over := len(w.events) - w.depth; over > 0 {
		w.events = append(w.events[:0], w.events[over:]...)
	}
}

func (w *watchLog) list(drain bool) []EventRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]EventRecord, len(w.events))
	copy(out, w.events)
	if drain {
		w.events = w.events[:0]
	}
	return out
}

type watchSet struct {
	mu    sync.Mutex
	depth int
	logs  map[int32]*watchLog
}

func newWatchSet(depth int) *watchSet {
	return &watchSet{depth: depth, logs: make(map[int32]*watchLog)}
}

// start returns the log for id, creating it when absent.
func (ws *watchSet) start(id int32) *watchLog {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if w, ok := ws.logs[id]; ok {
		return w
	}
	w := &watchLog{depth: ws.depth}
	ws.logs[id] = w
	return w
}

func (ws *watchSet) get(id int32) (*watchLog, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	w, ok := ws.logs[id]
	return w, ok
}

func (ws *watchSet) stop(id int32) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	delete(ws.logs, id)
}
