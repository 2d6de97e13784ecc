package tier

import "strings"

// Store exposes tier lookup for the orchestrator and handlers.
type Store interface {
	List() []Tier
	FindByName(name string) (Tier, bool)
	Resolve(name string) Tier
}

// MemoryStore implements Store with an in-memory slice; tiers are static
// configuration loaded once at process start.
type MemoryStore struct {
	items []Tier
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied tiers.
func NewMemoryStore(items []Tier) *MemoryStore {
	return &MemoryStore{items: append([]Tier(nil), items...)}
}

// List returns the configured tiers.
func (s *MemoryStore) List() []Tier {
	return append([]Tier(nil), s.items...)
}

// FindByName looks up a tier by its case-insensitive name.
func (s *MemoryStore) FindByName(name string) (Tier, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, item := range s.items {
		if item.Name == name {
			return item, true
		}
	}
	return Tier{}, false
}

// Resolve returns the named tier, falling back to the default tier for
// unknown or empty names. Never fails.
func (s *MemoryStore) Resolve(name string) Tier {
	if t, ok := s.FindByName(name); ok {
		return t
	}
	t, _ := s.FindByName(DefaultName)
	return t
}
