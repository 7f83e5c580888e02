package industry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/erp/orderdesk/internal/domain/shared"
)

// Registry holds the known industry profiles. Resolve never fails: unknown
// identifiers get the general profile.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Config
}

// NewRegistry creates a registry seeded with the built-in profiles
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Config)}
	for _, cfg := range Builtin() {
		r.profiles[cfg.ID] = cfg.Clone()
	}
	return r
}

// Register adds a new profile
func (r *Registry) Register(cfg Config) error {
	cfg.ID = NormalizeID(cfg.ID)
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[cfg.ID]; exists {
		return fmt.Errorf("%w: industry '%s' already registered", shared.ErrAlreadyExists, cfg.ID)
	}
	r.profiles[cfg.ID] = cfg.Clone()
	return nil
}

// Override adds or replaces a profile
func (r *Registry) Override(cfg Config) error {
	cfg.ID = NormalizeID(cfg.ID)
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[cfg.ID] = cfg.Clone()
	return nil
}

// Lookup returns the profile registered under id, without fallback
func (r *Registry) Lookup(id string) (Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.profiles[NormalizeID(id)]
	if !ok {
		return Config{}, false
	}
	return cfg.Clone(), true
}

// Resolve returns the profile for id, or the general profile when id is unknown
func (r *Registry) Resolve(id string) Config {
	if cfg, ok := r.Lookup(id); ok {
		return cfg
	}
	if cfg, ok := r.Lookup(GeneralID); ok {
		return cfg
	}
	// general was never removable, but keep Resolve total for a zero Registry
	for _, cfg := range Builtin() {
		if cfg.ID == GeneralID {
			return cfg
		}
	}
	return Config{ID: GeneralID, Name: "General Business", Workflow: WorkflowHybrid}
}

// Known reports whether id has its own profile
func (r *Registry) Known(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// Unregister removes a profile. The general profile cannot be removed.
func (r *Registry) Unregister(id string) error {
	id = NormalizeID(id)
	if id == GeneralID {
		return fmt.Errorf("%w: the general profile cannot be removed", shared.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[id]; !exists {
		return fmt.Errorf("%w: industry '%s' not found", shared.ErrNotFound, id)
	}
	delete(r.profiles, id)
	return nil
}

// IDs returns all registered identifiers, sorted
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns all profiles sorted by id
func (r *Registry) List() []Config {
	ids := r.IDs()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Config, 0, len(ids))
	for _, id := range ids {
		if cfg, ok := r.profiles[id]; ok {
			out = append(out, cfg.Clone())
		}
	}
	return out
}

// Count returns the number of registered profiles
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}
