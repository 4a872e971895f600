package domain

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	m "tracehook.dev/pkg/tracehook/internal/model"
)

// HookSet is an ordered collection of hook descriptors with at most one
// descriptor per method identity. It is safe for concurrent use.
type HookSet struct {
	mu    sync.RWMutex
	hooks []m.HookDescriptor
}

// NewHookSet returns a HookSet holding hooks, later duplicates replacing earlier ones.
func NewHookSet(hooks ...m.HookDescriptor) *HookSet {
	s := &HookSet{}

	for _, h := range hooks {
		s.Add(h)
	}

	return s
}

func (s *HookSet) indexOf(id m.MethodIdentity) int {
	return slices.IndexFunc(s.hooks, func(h m.HookDescriptor) bool { return h.Method == id })
}

// Add stores h. A descriptor for the same method is replaced in place.
func (s *HookSet) Add(h m.HookDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(h.Method); i >= 0 {
		s.hooks[i] = h
		return
	}

	s.hooks = append(s.hooks, h)
}

// Remove drops the descriptor for id.
func (s *HookSet) Remove(id m.MethodIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("hook %s: %w", id, ErrNotFound)
	}

	s.hooks = slices.Delete(s.hooks, i, i+1)

	return nil
}

// Toggle sets the flags of the hook for id, adding it when absent.
func (s *HookSet) Toggle(id m.MethodIdentity, logName, logParameters, logReturn bool) m.HookDescriptor {
	h := m.HookDescriptor{Method: id, LogName: logName, LogParameters: logParameters, LogReturn: logReturn}
	s.Add(h)

	return h
}

// Find resolves a display key. Both the full key with its "[flags]" suffix
// and the bare method identity are accepted.
func (s *HookSet) Find(key string) (m.HookDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key = strings.TrimSpace(key)

	for _, h := range s.hooks {
		if h.DisplayKey() == key || h.Method.String() == key {
			return h, nil
		}
	}

	return m.HookDescriptor{}, fmt.Errorf("hook %q: %w", key, ErrNotFound)
}

// Get returns the descriptor for id.
func (s *HookSet) Get(id m.MethodIdentity) (m.HookDescriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.hooks[i], true
	}

	return m.HookDescriptor{}, false
}

// All returns the descriptors in insertion order.
func (s *HookSet) All() []m.HookDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.hooks)
}

// Len returns the number of descriptors.
func (s *HookSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.hooks)
}

// Clear drops every descriptor.
func (s *HookSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hooks = nil
}

// Snapshot returns an independent copy.
func (s *HookSet) Snapshot() *HookSet {
	return &HookSet{hooks: s.All()}
}
