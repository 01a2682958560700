// Package registry is the ordered index of live tags.
//
// The registry lock covers only the tree structure. Node buffers and
// callbacks are guarded by each node's own mutex, so structural lookups never
// wait on an access in progress.
package registry

import (
	"errors"
	"math"
	"sync"

	"github.com/danmuck/plcstub/internal/tag"
	"github.com/google/btree"
)

var ErrIDSpaceExhausted = errors.New("registry: tag id space exhausted")

const degree = 16

type entry struct {
	id   int32
	node *tag.Node
}

func less(a, b entry) bool {
	return a.id < b.id
}

// Registry stores tag nodes ordered by id.
type Registry struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[entry]
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{tree: btree.NewG(degree, less)}
}

// AllocateAndInsert assigns the next id (current max + 1, or 1 when empty),
// builds a zero-filled node and publishes it. Concurrent callers always
// receive distinct ids.
func (r *Registry) AllocateAndInsert(name string, elemSize, elemCount int) (*tag.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := int32(1)
	if last, ok := r.tree.Max(); ok {
		if last.id == math.MaxInt32 {
			return nil, ErrIDSpaceExhausted
		}
		id = last.id + 1
	}
	node := tag.NewNode(id, name, elemSize, elemCount)
	r.tree.ReplaceOrInsert(entry{id: id, node: node})
	return node, nil
}

// Lookup returns the node for id.
func (r *Registry) Lookup(id int32) (*tag.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tree.Get(entry{id: id})
	if !ok {
		return nil, false
	}
	return e.node, true
}

// MaxID returns the highest assigned id, or 0 when empty.
func (r *Registry) MaxID() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if last, ok := r.tree.Max(); ok {
		return last.id
	}
	return 0
}

// Len returns the number of live tags.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree.Len()
}

// Ascend calls fn for each node in id order until fn returns false. The
// structural lock is released before fn runs.
func (r *Registry) Ascend(fn func(*tag.Node) bool) {
	r.mu.RLock()
	nodes := make([]*tag.Node, 0, r.tree.Len())
	r.tree.Ascend(func(e entry) bool {
		nodes = append(nodes, e.node)
		return true
	})
	r.mu.RUnlock()

	for _, n := range nodes {
		if !fn(n) {
			return
		}
	}
}
