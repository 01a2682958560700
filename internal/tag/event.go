package tag

import "strconv"

// Event is a lifecycle notification delivered to a tag's callback.
type Event int

const (
	EventReadStarted    Event = 1
	EventReadCompleted  Event = 2
	EventWriteStarted   Event = 3
	EventWriteCompleted Event = 4
	EventAborted        Event = 5
)

func (e Event) String() string {
	switch e {
	case EventReadStarted:
		return "read_started"
	case EventReadCompleted:
		return "read_completed"
	case EventWriteStarted:
		return "write_started"
	case EventWriteCompleted:
		return "write_completed"
	case EventAborted:
		return "aborted"
	default:
		return "event(" + strconv.Itoa(int(e)) + ")"
	}
}

// Status is the numeric result code surfaced to callers and callbacks.
type Status int

const (
	StatusOK       Status = 0
	StatusBadParam Status = -7
	StatusNotFound Status = -19
	StatusNoMem    Status = -23
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBadParam:
		return "bad_param"
	case StatusNotFound:
		return "not_found"
	case StatusNoMem:
		return "no_mem"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Callback receives lifecycle events synchronously on the calling goroutine,
// with the tag's lock held. It must not call back into an operation on the
// same tag.
type Callback func(id int32, ev Event, status Status)
