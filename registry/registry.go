// Package registry is a string keyed store used to hand shared objects,
// such as the graphics context, to components that are built later and
// elsewhere. It does not notify anyone about changes.
//
// A Registry is not safe for concurrent use.
package registry

// Well known keys.
const (
	ContextKey = "gl"
	SurfaceKey = "surface"
)

// Registry maps keys to arbitrary values.
type Registry struct {
	values map[string]any
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{values: map[string]any{}}
}

// Set stores value under key, replacing any previous value.
func (r *Registry) Set(key string, value any) {
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Registry) Get(key string) (any, bool) {
	value, ok := r.values[key]
	return value, ok
}

// Remove deletes key. Removing a missing key does nothing.
func (r *Registry) Remove(key string) {
	delete(r.values, key)
}

// Len returns the number of stored keys.
func (r *Registry) Len() int { return len(r.values) }

// Lookup returns the value under key if it is present and has type T.
func Lookup[T any](r *Registry, key string) (T, bool) {
	value, ok := r.values[key]
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}
