package node

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRegistered is returned when kind is registered twice.
var ErrRegistered = errors.New("kind already registered")

// Registry holds node kinds available to an application. It's created at
// startup and closed at shutdown.
type Registry struct {
	kinds []Kind
	names map[string]Kind
}

// NewRegistry returns a registry with provided kinds.
func NewRegistry(kinds ...Kind) (*Registry, error) {
	r := &Registry{
		names: make(map[string]Kind),
	}
	for _, k := range kinds {
		if err := r.Register(k); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Standard returns a new registry with all node kinds.
func Standard() *Registry {
	r, _ := NewRegistry(Kinds()...)
	return r
}

// Register adds kind to registry.
func (r *Registry) Register(k Kind) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
	name := specs[k].Name
	if _, ok := r.names[name]; ok {
		return fmt.Errorf("%w: %v", ErrRegistered, k)
	}
	r.names[name] = k
	r.kinds = append(r.kinds, k)
	return nil
}

// Unregister removes kind from registry.
func (r *Registry) Unregister(k Kind) {
	if !r.Has(k) {
		return
	}
	delete(r.names, specs[k].Name)
	for i := range r.kinds {
		if r.kinds[i] == k {
			r.kinds = append(r.kinds[:i], r.kinds[i+1:]...)
			break
		}
	}
}

// Has reports if kind is registered.
func (r *Registry) Has(k Kind) bool {
	if !k.Valid() {
		return false
	}
	_, ok := r.names[specs[k].Name]
	return ok
}

// Lookup returns registered kind by name. Case is ignored.
func (r *Registry) Lookup(name string) (Kind, error) {
	if k, ok := r.names[strings.ToLower(name)]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// New creates a node of registered kind.
func (r *Registry) New(name string) (*Node, error) {
	k, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(k)
}

// Kinds returns registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	return append([]Kind(nil), r.kinds...)
}

// Category returns registered kinds of provided category.
func (r *Registry) Category(c Category) []Kind {
	var result []Kind
	for _, k := range r.kinds {
		if specs[k].Category == c {
			result = append(result, k)
		}
	}
	return result
}

// Close unregisters all kinds.
func (r *Registry) Close() {
	r.kinds = nil
	r.names = make(map[string]Kind)
}
