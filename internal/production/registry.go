package production

import (
	"regexp"
	"strings"
	"sync"

	"optiserve/internal/apperror"
)

// Registry is the process-wide, keyed dispatch table from an optimizer
// identifier to its Builder. It is written once at startup and read-only
// afterwards; reads take no lock.
type Registry struct {
	builders map[string]Builder
	mu       sync.Mutex // guards only the registration window at startup
}

// NewRegistry returns a registry pre-populated with the known built-in
// optimizers (basic, demand-constrained).
func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	r.mustRegister("basic", BasicBuilder{})
	r.mustRegister("demand-constrained", DemandConstrainedBuilder{})
	return r
}

func (r *Registry) mustRegister(id string, b Builder) {
	if err := r.Register(id, b); err != nil {
		panic(err)
	}
}

// Register adds a builder under id, failing if the id is already taken.
func (r *Registry) Register(id string, b Builder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.builders[id]; exists {
		return apperror.New(apperror.CodeAlreadyExists, "optimizer already registered: "+id).WithField(id)
	}
	r.builders[id] = b
	return nil
}

// Get looks up a builder by identifier.
func (r *Registry) Get(id string) (Builder, error) {
	b, ok := r.builders[id]
	if !ok {
		return nil, apperror.New(apperror.CodeUnknownKind, "unknown optimizer: "+id).WithField(id)
	}
	return b, nil
}

// List returns the registered identifiers in no particular order.
func (r *Registry) List() []string {
	ids := make([]string, 0, len(r.builders))
	for id := range r.builders {
		ids = append(ids, id)
	}
	return ids
}

var camelBoundary = regexp.MustCompile("([a-z0-9])([A-Z])")

// DeriveID converts a Go type name like "DemandConstrainedBuilder" into
// the registry identifier "demand-constrained", stripping a trailing
// "Builder" suffix and converting CamelCase to kebab-case.
func DeriveID(typeName string) string {
	name := strings.TrimSuffix(typeName, "Builder")
	kebab := camelBoundary.ReplaceAllString(name, "$1-$2")
	return strings.ToLower(kebab)
}

// Discover registers every builder in candidates under its derived
// identifier, skipping (and reporting) any id collision rather than
// silently overwriting an existing registration. Discovery is explicit
// and opt-in: callers supply the exact candidate list, confined to
// process startup.
func (r *Registry) Discover(candidates map[string]Builder) []string {
	var skipped []string
	for typeName, b := range candidates {
		id := DeriveID(typeName)
		if err := r.Register(id, b); err != nil {
			skipped = append(skipped, id)
		}
	}
	return skipped
}
