package partition

import (
	"context"
	"fmt"
	"sync"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEME INTERFACE
// ══════════════════════════════════════════════════════════════════════════════

// Scheme decides which group of a partition a user belongs to.
//
// Implementations should be deterministic for a given user and partition
// unless they are genuinely random, handle partitions with no groups, and
// avoid side effects beyond persisting an assignment.
type Scheme interface {
	// Name returns the name of this scheme, derived from the registry entry
	// that produced it.
	Name() string

	// IsDynamic reports whether group assignment is computed fresh on every
	// call. When false, the group is assigned once and then persisted for
	// the user.
	IsDynamic() bool

	// GetGroupForUser returns the group the user should be assigned to
	// within the given partition, or nil when no group applies.
	GetGroupForUser(ctx context.Context, user User, p UserPartition) (*Group, error)
}

// SchemeFactory constructs a scheme instance. The registry passes the
// extension itself so the scheme can derive its name from it.
type SchemeFactory func(ext *Extension) (Scheme, error)

// Extension is one entry of the scheme registration table: a name and the
// factory that builds the scheme behind it.
type Extension struct {
	Name string
	New  SchemeFactory
}

// BaseScheme carries the registry extension a scheme was built from and
// provides the default non-dynamic behavior. Concrete schemes embed it and
// override IsDynamic as needed.
type BaseScheme struct {
	ext *Extension
}

// NewBaseScheme creates a BaseScheme bound to the given extension.
func NewBaseScheme(ext *Extension) BaseScheme {
	return BaseScheme{ext: ext}
}

// Name returns the name of the extension this scheme was registered under,
// or "" when the scheme was constructed outside the registry.
func (b BaseScheme) Name() string {
	if b.ext == nil {
		return ""
	}
	return b.ext.Name
}

// IsDynamic reports false: by default a user's group is assigned once and
// then persisted.
func (b BaseScheme) IsDynamic() bool {
	return false
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEME REGISTRY
// ══════════════════════════════════════════════════════════════════════════════

// SchemeRegistry maps scheme names to factories and memoizes one instance per
// name for the lifetime of the registry. There is no invalidation; for the
// process-wide default registry, process restart is the only reset point.
//
// Safe for concurrent use.
type SchemeRegistry struct {
	mu         sync.RWMutex
	extensions map[string]*Extension
	schemes    map[string]Scheme
}

// NewSchemeRegistry creates an empty registry.
func NewSchemeRegistry() *SchemeRegistry {
	return &SchemeRegistry{
		extensions: make(map[string]*Extension),
		schemes:    make(map[string]Scheme),
	}
}

// Register adds an extension to the registry.
// Returns ErrSchemeExists when the name is already taken.
func (r *SchemeRegistry) Register(ext *Extension) error {
	if ext == nil || ext.Name == "" {
		return fmt.Errorf("%w: extension must carry a name", ErrMalformedValue)
	}
	if ext.New == nil {
		return fmt.Errorf("%w: extension %q has no factory", ErrMalformedValue, ext.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.extensions[ext.Name]; ok {
		return fmt.Errorf("%w: %q", ErrSchemeExists, ext.Name)
	}
	r.extensions[ext.Name] = ext
	return nil
}

// Get returns the scheme with the given name, instantiating it through its
// factory on first use and returning the same cached instance afterwards.
// Returns ErrUnrecognizedScheme when no extension is registered under name.
func (r *SchemeRegistry) Get(name string) (Scheme, error) {
	r.mu.RLock()
	if s, ok := r.schemes[name]; ok {
		r.mu.RUnlock()
		return s, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under the write lock; another goroutine may have won the race.
	if s, ok := r.schemes[name]; ok {
		return s, nil
	}

	ext, ok := r.extensions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedScheme, name)
	}

	s, err := ext.New(ext)
	if err != nil {
		return nil, WrapError("scheme", "Get", ErrMalformedValue,
			fmt.Sprintf("factory for scheme %q failed", name), err)
	}

	r.schemes[name] = s
	return s, nil
}

// Names returns the registered scheme names, in no particular order.
func (r *SchemeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.extensions))
	for name := range r.extensions {
		names = append(names, name)
	}
	return names
}

// ══════════════════════════════════════════════════════════════════════════════
// PROCESS-WIDE DEFAULT REGISTRY
// ══════════════════════════════════════════════════════════════════════════════

var (
	defaultRegistry     *SchemeRegistry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide scheme registry, initializing it
// exactly once on first use.
func DefaultRegistry() *SchemeRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewSchemeRegistry()
	})
	return defaultRegistry
}

// Register adds an extension to the process-wide registry.
func Register(ext *Extension) error {
	return DefaultRegistry().Register(ext)
}

// GetScheme returns the scheme with the given name from the process-wide
// registry.
func GetScheme(name string) (Scheme, error) {
	return DefaultRegistry().Get(name)
}
