package gen

import "github.com/opencomputeproject/ocp-telemetry/format"

// Key identifies a named vendor unique identifier. Statistics use a zero
// Class.
type Key struct {
	Class format.EventClass
	ID    uint16
}

// Registry records the names invented for vendor unique identifiers while
// a log is generated. It keeps a key-to-name map for lookups and an ordered
// key list so the strings log lists names in the order they were first
// seen.
type Registry struct {
	names map[Key]string // key → first name registered
	keys  []Key          // insertion order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[Key]string),
		keys:  make([]Key, 0),
	}
}

// Track registers name for key and returns the name the key resolves to.
// A key that is already registered keeps its first name.
func (r *Registry) Track(key Key, name string) string {
	if existing, ok := r.names[key]; ok {
		return existing
	}

	r.names[key] = name
	r.keys = append(r.keys, key)

	return name
}

// Name returns the name registered for key.
func (r *Registry) Name(key Key) (string, bool) {
	name, ok := r.names[key]
	return name, ok
}

// Keys returns the registered keys in insertion order.
func (r *Registry) Keys() []Key {
	return r.keys
}

// Count returns the number of registered keys.
func (r *Registry) Count() int {
	return len(r.keys)
}
