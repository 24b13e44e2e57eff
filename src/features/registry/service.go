// Package registry is the single source of truth for which providers
// exist, what they can do, whether they are usable right now, and in what
// order they should be tried.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ErrDuplicateProvider is returned when a provider ID is registered twice.
var ErrDuplicateProvider = errors.New("provider already registered")

// fallbackPriority orders providers that declare no default priority.
const fallbackPriority = 10

// Setting is a persisted per-provider override. Nil fields mean "no
// override stored".
type Setting struct {
	Enabled  *bool
	Priority *int
}

// SettingsStore persists provider enable/priority overrides across
// restarts. Implementations live in infra.
type SettingsStore interface {
	Load(ctx context.Context) (map[string]Setting, error)
	Save(ctx context.Context, providerID string, setting Setting) error
}

type entry struct {
	provider     *Provider
	enabled      bool
	userPriority *int
	seq          int // registration order, tie-break for equal priorities
}

// Service holds all registered providers, indexes them by role and tracks
// enabled state and priority overrides. Reads are safe to call
// concurrently; mutations are serialized against each other.
type Service struct {
	mu      sync.RWMutex
	entries map[string]*entry
	roles   map[Role][]string // role -> provider IDs, insertion ordered
	nextSeq int

	store    SettingsStore // optional
	settings map[string]Setting
}

// NewService creates an empty registry. When store is non-nil, persisted
// settings are loaded once and applied to providers as they register;
// mutations are written back. Store failures are logged, never fatal.
func NewService(store SettingsStore) *Service {
	s := &Service{
		entries:  make(map[string]*entry),
		roles:    make(map[Role][]string),
		store:    store,
		settings: make(map[string]Setting),
	}
	if store != nil {
		settings, err := store.Load(context.Background())
		if err != nil {
			slog.Error("Failed to load provider settings", "error", err)
		} else if settings != nil {
			s.settings = settings
		}
	}
	return s
}

// Register adds a provider and indexes it under every role it declares.
// The provider map and role index are updated under one lock so no reader
// observes one without the other. Registering an already-registered ID
// fails with ErrDuplicateProvider.
func (s *Service) Register(p *Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := p.ID()
	if _, exists := s.entries[id]; exists {
		return fmt.Errorf("provider %q: %w", id, ErrDuplicateProvider)
	}

	e := &entry{provider: p, enabled: true, seq: s.nextSeq}
	s.nextSeq++

	if setting, ok := s.settings[id]; ok {
		if setting.Enabled != nil {
			e.enabled = *setting.Enabled
		}
		if setting.Priority != nil {
			v := *setting.Priority
			e.userPriority = &v
		}
	}

	s.entries[id] = e
	for _, role := range p.Roles() {
		s.roles[role] = append(s.roles[role], id)
	}

	slog.Info("Provider registered", "id", id, "name", p.Name(), "roles", p.Roles(), "priority", s.effectivePriority(e))
	return nil
}

// Unregister removes a provider from every role bucket and then from the
// provider map. Unknown IDs are a no-op.
func (s *Service) Unregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[id]
	if !exists {
		return
	}
	for _, role := range e.provider.Roles() {
		s.roles[role] = removeID(s.roles[role], id)
		if len(s.roles[role]) == 0 {
			delete(s.roles, role)
		}
	}
	delete(s.entries, id)
	slog.Info("Provider unregistered", "id", id)
}

// SetEnabled toggles a provider's visibility. Disabled providers stay
// registered with their priority settings intact and become invisible to
// every retrieval path until re-enabled. Unknown IDs are a no-op.
func (s *Service) SetEnabled(id string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[id]
	if !exists {
		return
	}
	e.enabled = enabled
	s.persist(id, e)
	slog.Info("Provider toggled", "id", id, "enabled", enabled)
}

// SetPriority assigns a user priority override for a provider. Unknown IDs
// are a no-op.
func (s *Service) SetPriority(id string, priority int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[id]
	if !exists {
		return
	}
	e.userPriority = &priority
	s.persist(id, e)
}

// SetOrder assigns strictly decreasing priorities by position: the first ID
// gets the highest. This lets a drag-to-reorder UI map directly onto
// resolution order. Unknown IDs in the sequence are skipped.
func (s *Service) SetOrder(orderedIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(orderedIDs)
	for i, id := range orderedIDs {
		e, exists := s.entries[id]
		if !exists {
			continue
		}
		priority := (n - i) * 10
		e.userPriority = &priority
		s.persist(id, e)
	}
}

// GetByRole returns the enabled providers declaring the role, sorted by
// effective priority descending. Equal priorities keep registration order
// (stable sort). Returns an empty slice, never an error, when nothing is
// registered or everything is disabled.
func (s *Service) GetByRole(role Role) []*Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.roles[role]
	selected := make([]*entry, 0, len(ids))
	for _, id := range ids {
		if e := s.entries[id]; e != nil && e.enabled {
			selected = append(selected, e)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		pi, pj := s.effectivePriority(selected[i]), s.effectivePriority(selected[j])
		if pi != pj {
			return pi > pj
		}
		return selected[i].seq < selected[j].seq
	})

	providers := make([]*Provider, len(selected))
	for i, e := range selected {
		providers[i] = e.provider
	}
	return providers
}

// Get returns a provider only if it is both registered and enabled, so
// disabled providers are invisible through every retrieval path.
func (s *Service) Get(id string) (*Provider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[id]
	if !exists || !e.enabled {
		return nil, false
	}
	return e.provider, true
}

// Status describes one provider for the management API.
type Status struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Roles    []Role `json:"roles"`
	Enabled  bool   `json:"enabled"`
	Priority int    `json:"priority"`
}

// Statuses lists every registered provider, disabled ones included, in
// effective-priority order.
func (s *Service) Statuses() []Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := s.effectivePriority(entries[i]), s.effectivePriority(entries[j])
		if pi != pj {
			return pi > pj
		}
		return entries[i].seq < entries[j].seq
	})

	statuses := make([]Status, len(entries))
	for i, e := range entries {
		statuses[i] = Status{
			ID:       e.provider.ID(),
			Name:     e.provider.Name(),
			Roles:    e.provider.Roles(),
			Enabled:  e.enabled,
			Priority: s.effectivePriority(e),
		}
	}
	return statuses
}

// effectivePriority resolves the ordering value for an entry: user override
// if set, else the declared default, else the fallback constant. Callers
// must hold at least a read lock.
func (s *Service) effectivePriority(e *entry) int {
	if e.userPriority != nil {
		return *e.userPriority
	}
	if e.provider.Manifest().DefaultPriority != 0 {
		return e.provider.Manifest().DefaultPriority
	}
	return fallbackPriority
}

// persist writes an entry's overrides through the settings store. Callers
// must hold the write lock.
func (s *Service) persist(id string, e *entry) {
	enabled := e.enabled
	setting := Setting{Enabled: &enabled}
	if e.userPriority != nil {
		v := *e.userPriority
		setting.Priority = &v
	}
	s.settings[id] = setting
	if s.store == nil {
		return
	}
	if err := s.store.Save(context.Background(), id, setting); err != nil {
		slog.Error("Failed to persist provider setting", "id", id, "error", err)
	}
}

func removeID(ids []string, id string) []string {
	for i, have := range ids {
		if have == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
