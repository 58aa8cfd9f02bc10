// README: Draft registry: one store per visitor session, with idle expiry sweep.
package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"transferdesk/internal/types"
)

var ErrDraftNotFound = errors.New("draft not found")

type Registry struct {
	deps Deps

	mu     sync.Mutex
	drafts map[types.ID]*Store
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, drafts: make(map[types.ID]*Store)}
}

// Create starts a fresh draft and returns its store.
func (r *Registry) Create() *Store {
	id := types.ID(uuid.NewString())
	s := NewStore(id, r.deps)
	r.mu.Lock()
	r.drafts[id] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id types.ID) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return s, nil
}

// Delete drops a draft, on submission or abandonment.
func (r *Registry) Delete(id types.ID) {
	r.mu.Lock()
	s, ok := r.drafts[id]
	delete(r.drafts, id)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}

// RunSweeper drops drafts untouched for longer than idle. Mirrors the
// background ticker loops of the API's other maintenance tasks.
func (r *Registry) RunSweeper(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(idle, time.Now())
		}
	}
}

func (r *Registry) sweep(idle time.Duration, now time.Time) {
	r.mu.Lock()
	var expired []*Store
	for id, s := range r.drafts {
		if now.Sub(s.Snapshot().UpdatedAt) > idle {
			expired = append(expired, s)
			delete(r.drafts, id)
		}
	}
	r.mu.Unlock()
	for _, s := range expired {
		s.Close()
	}
}
