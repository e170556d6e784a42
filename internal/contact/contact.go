// Package contact tracks every remote address the service has talked to.
package contact

import (
	"strings"
	"sync"
	"time"
)

// Context is the per-contact state, created lazily on first inbound
// message and kept for the process lifetime.
type Context struct {
	ID           string
	Name         string
	Interactions int
	LastSeen     time.Time
}

type Stats struct {
	TotalContacts     int
	TotalInteractions int
	ActiveLast24h     int
}

type Registry struct {
	mu       sync.Mutex
	contacts map[string]*Context
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		contacts: make(map[string]*Context),
		now:      time.Now,
	}
}

// Touch records an interaction and returns a snapshot of the contact plus
// whether this was its first-ever recorded interaction.
func (r *Registry) Touch(id, name string) (Context, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contacts[id]
	if !ok {
		c = &Context{ID: id, Name: DeriveName(id)}
		r.contacts[id] = c
	}
	first := c.Interactions == 0
	if name != "" {
		c.Name = name
	}
	c.Interactions++
	c.LastSeen = r.now()
	return *c, first
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.contacts)
}

func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-24 * time.Hour)
	s := Stats{TotalContacts: len(r.contacts)}
	for _, c := range r.contacts {
		s.TotalInteractions += c.Interactions
		if c.LastSeen.After(cutoff) {
			s.ActiveLast24h++
		}
	}
	return s
}

// DeriveName extracts a readable token from a transport address, used when
// no display name was pushed: "33612345678@s.whatsapp.net" -> "33612345678",
// "whatsapp:+33612345678" -> "+33612345678".
func DeriveName(id string) string {
	name := strings.TrimPrefix(id, "whatsapp:")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return id
	}
	return name
}
