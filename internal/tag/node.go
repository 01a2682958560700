// Package tag defines the unit of storage held by the registry.
package tag

import "sync"

// NamePrefix is prepended to every user-supplied tag name.
const NamePrefix = "DUMMY_AQUA_DATA_"

// Node is one tag: immutable identity plus a buffer and callback guarded by a
// per-node mutex.
type Node struct {
	ID        int32
	Name      string
	ElemSize  int
	ElemCount int

	mu  sync.Mutex
	buf []byte
	cb  Callback
}

// NewNode builds a fully initialized node with a zeroed buffer. Sizes are
// validated by the caller.
func NewNode(id int32, name string, elemSize, elemCount int) *Node {
	return &Node{
		ID:        id,
		Name:      NamePrefix + name,
		ElemSize:  elemSize,
		ElemCount: elemCount,
		buf:       make([]byte, elemSize*elemCount),
	}
}

// Size is the buffer length in bytes.
func (n *Node) Size() int {
	return n.ElemSize * n.ElemCount
}

// Lock acquires the node for an access and returns the handle used to reach
// its buffer and callback until Release.
func (n *Node) Lock() *Locked {
	n.mu.Lock()
	return &Locked{n: n}
}

// SetCallback replaces the callback; nil clears it.
func (n *Node) SetCallback(cb Callback) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cb = cb
}

// Snapshot copies the buffer under the lock.
func (n *Node) Snapshot() []byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]byte, len(n.buf))
	copy(out, n.buf)
	return out
}

// Locked is a node whose mutex is held by the current goroutine.
type Locked struct {
	n *Node
}

// Buffer exposes the owned buffer. The slice must not outlive Release.
func (l *Locked) Buffer() []byte {
	return l.n.buf
}

// Fire delivers ev to the registered callback, if any.
func (l *Locked) Fire(ev Event, status Status) bool {
	if l.n.cb == nil {
		return false
	}
	l.n.cb(l.n.ID, ev, status)
	return true
}

// Release unlocks the node.
func (l *Locked) Release() {
	l.n.mu.Unlock()
}
