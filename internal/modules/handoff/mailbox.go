// README: Single-slot mailbox: one payload per session key, cleared on first read.
package handoff

import (
	"context"
	"sync"
	"time"
)

// ErrEmpty is returned by Take when no payload is waiting.
// A refresh after a successful read lands here, never on a re-apply.
var ErrEmpty = errSentinel("handoff slot empty")

type errSentinel string

func (e errSentinel) Error() string { return string(e) }

// Mailbox passes one payload across the funnel→wizard page boundary.
// Put replaces any unread payload for the key; Take returns the payload at
// most once and clears the slot.
type Mailbox interface {
	Put(ctx context.Context, key string, raw []byte) error
	Take(ctx context.Context, key string) ([]byte, error)
}

type slot struct {
	raw     []byte
	expires time.Time
}

// MemoryMailbox is the in-process implementation, used standalone and as the
// fallback when no Redis is configured.
type MemoryMailbox struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	slots map[string]slot
}

func NewMemoryMailbox(ttl time.Duration) *MemoryMailbox {
	return &MemoryMailbox{ttl: ttl, now: time.Now, slots: make(map[string]slot)}
}

func (m *MemoryMailbox) Put(_ context.Context, key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = slot{raw: append([]byte(nil), raw...), expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryMailbox) Take(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[key]
	if !ok {
		return nil, ErrEmpty
	}
	delete(m.slots, key)
	if m.now().After(s.expires) {
		return nil, ErrEmpty
	}
	return s.raw, nil
}
