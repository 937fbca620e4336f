package problems

import (
	"net/http"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// StatusResolver maps an error type to the HTTP status it should produce.
type StatusResolver interface {
	StatusFor(t ErrorType) int
}

// StatusLookup is implemented by resolvers that tell registered types apart
// from the fallback. Only registered types are matched against the Go types
// of arbitrary errors.
type StatusLookup interface {
	Lookup(t ErrorType) (int, bool)
}

// StatusResolverFunc adapts a function to StatusResolver.
type StatusResolverFunc func(t ErrorType) int

func (f StatusResolverFunc) StatusFor(t ErrorType) int {
	return f(t)
}

// Registry is a StatusResolver backed by a lookup table. Types that were
// never registered resolve to the fallback status, 400 Bad Request unless
// configured otherwise.
//
// It is safe for concurrent use; typically it is filled at startup and read
// while serving requests.
type Registry struct {
	mu       sync.RWMutex
	statuses map[ErrorType]int
	fallback int
}

// DefaultRegistry backs the package level From and FromError helpers.
var DefaultRegistry = NewRegistry(http.StatusBadRequest)

// NewRegistry creates an empty registry. A fallback of 0 means 400.
func NewRegistry(fallback int) *Registry {
	if fallback == 0 {
		fallback = http.StatusBadRequest
	}
	return &Registry{
		statuses: make(map[ErrorType]int),
		fallback: fallback,
	}
}

// Register declares the status for an error type.
func (r *Registry) Register(t ErrorType, status int) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[t] = status
	return r
}

// RegisterError declares the status for the Go type of err.
func (r *Registry) RegisterError(err error, status int) *Registry {
	return r.Register(TypeOf(err), status)
}

// StatusFor implements StatusResolver.
func (r *Registry) StatusFor(t ErrorType) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if status, ok := r.statuses[t]; ok {
		return status
	}
	return r.fallback
}

// Lookup returns the registered status and whether one was registered.
func (r *Registry) Lookup(t ErrorType) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status, ok := r.statuses[t]
	return status, ok
}

// Include copies the registrations of other that r does not have yet.
func (r *Registry) Include(other *Registry) *Registry {
	other.mu.RLock()
	entries := lo.Entries(other.statuses)
	other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		if _, ok := r.statuses[e.Key]; !ok {
			r.statuses[e.Key] = e.Value
		}
	}
	return r
}

// Fallback returns the status used for unregistered types.
func (r *Registry) Fallback() int {
	return r.fallback
}

// Types returns the registered types ordered by full name.
func (r *Registry) Types() []ErrorType {
	r.mu.RLock()
	types := lo.Keys(r.statuses)
	r.mu.RUnlock()

	sort.Slice(types, func(i, j int) bool { return types[i].FullName() < types[j].FullName() })
	return types
}
