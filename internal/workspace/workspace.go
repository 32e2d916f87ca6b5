// Package workspace maps session keys to isolated goal stores.
//
// Each MCP client session gets its own goal graph, created lazily on
// first use and living for the process lifetime. There is no cross-session
// visibility and no persistence: a workspace dies with the process or with
// an explicit Reset.
package workspace

import (
	"sync"

	"github.com/conductor-mcp/conductor/internal/goals"
)

// Registry owns one goals.Store per session key. It only guards the
// key → store map; each store carries its own per-workspace exclusion, so
// operations on different workspaces never contend.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*goals.Store
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*goals.Store)}
}

// Get returns the store for key, creating it on first reference.
func (r *Registry) Get(key string) *goals.Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[key]
	if !ok {
		store = goals.NewStore()
		r.stores[key] = store
	}
	return store
}

// Reset clears the workspace for key. The next Get starts fresh. Used for
// test isolation; a reset of an untouched key is a no-op.
func (r *Registry) Reset(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, key)
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
