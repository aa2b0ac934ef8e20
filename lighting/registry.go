package lighting

import (
	"sync"

	"ledcore-go/errcode"
)

// Registry holds the board's channels by name and index.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Channel
	list   []*Channel
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Channel)}
}

// Add registers ch. Names and indices must be unique.
func (r *Registry) Add(ch *Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[ch.Name()]; dup {
		return errcode.Conflict
	}
	for _, c := range r.list {
		if c.Index() == ch.Index() {
			return errcode.Conflict
		}
	}
	r.byName[ch.Name()] = ch
	r.list = append(r.list, ch)
	return nil
}

func (r *Registry) Get(name string) (*Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.byName[name]
	return ch, ok
}

func (r *Registry) ByIndex(i int) (*Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.list {
		if c.Index() == i {
			return c, true
		}
	}
	return nil, false
}

// All returns channels in registration order.
func (r *Registry) All() []*Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Channel, len(r.list))
	copy(out, r.list)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.list)
}
