package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Directory   string `json:"directory"`
	Signing     string `json:"signing"`
	DefaultMode Mode   `json:"default_mode"`
	StoreType   string `json:"store_type"`
	Store       any    `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := ServiceState{
		Directory:   s.store.Directory(),
		Signing:     s.store.Signing(),
		DefaultMode: s.defaultMode,
		StoreType:   "store",
	}
	if comp, ok := s.store.(introspection.Component); ok {
		state.StoreType = comp.ComponentType()
	}
	if intro, ok := s.store.(introspection.Introspectable); ok {
		state.Store = intro.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
