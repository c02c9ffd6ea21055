// Package idgen hands out opaque identifiers that are unique among all live ids.
package idgen

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultSize is the length of ids handed out when no size hint is given.
const DefaultSize = 32

type Allocator struct {
	mu   sync.Mutex
	used map[string]struct{}
}

func New() *Allocator {
	return &Allocator{used: make(map[string]struct{})}
}

// Allocate returns a fresh id of at most size characters (32 max, 8 min).
func (a *Allocator) Allocate(size int) string {
	if size <= 0 || size > DefaultSize {
		size = DefaultSize
	}
	if size < 8 {
		size = 8
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:size]
		if _, taken := a.used[id]; taken {
			continue
		}
		a.used[id] = struct{}{}
		return id
	}
}

// Release makes id available again. Releasing an unknown id is a no-op.
func (a *Allocator) Release(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.used, id)
}

func (a *Allocator) InUse(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.used[id]
	return ok
}

func (a *Allocator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.used)
}
