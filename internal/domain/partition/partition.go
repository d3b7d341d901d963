package partition

import "fmt"

const (
	// PartitionVersion is the current serialization version for
	// UserPartition.
	PartitionVersion = 2

	// Version1SchemeID is the scheme id assumed when deserializing version 1
	// partitions, which predate the scheme field.
	Version1SchemeID = "random"
)

// UserPartition is a named way to partition users into groups, primarily
// intended for running experiments. Each user is expected to be in at most
// one group per partition.
//
// The id is unique within the context these are used in (e.g. per course).
// Group order is meaningful: GetGroup returns the first match, and duplicate
// group ids are not defended against. Immutable after construction.
type UserPartition struct {
	id          PartitionID
	name        string
	description string
	groups      []Group
	scheme      Scheme
}

// NewUserPartition creates a UserPartition, coercing id to an integer.
// When scheme is nil, the default scheme (Version1SchemeID) is resolved from
// the process-wide registry.
func NewUserPartition(id any, name, description string, groups []Group, scheme Scheme) (UserPartition, error) {
	if scheme == nil {
		return NewUserPartitionWithSchemeID(id, name, description, groups, Version1SchemeID)
	}

	pid, err := NewPartitionID(id)
	if err != nil {
		return UserPartition{}, err
	}

	stored := make([]Group, len(groups))
	copy(stored, groups)

	return UserPartition{
		id:          pid,
		name:        name,
		description: description,
		groups:      stored,
		scheme:      scheme,
	}, nil
}

// NewUserPartitionWithSchemeID creates a UserPartition, resolving the scheme
// by id from the process-wide registry.
// Returns ErrUnrecognizedScheme when no such scheme is registered.
func NewUserPartitionWithSchemeID(id any, name, description string, groups []Group, schemeID string) (UserPartition, error) {
	scheme, err := GetScheme(schemeID)
	if err != nil {
		return UserPartition{}, err
	}
	return NewUserPartition(id, name, description, groups, scheme)
}

// ID returns the partition id.
func (p UserPartition) ID() PartitionID {
	return p.id
}

// Name returns the partition name.
func (p UserPartition) Name() string {
	return p.name
}

// Description returns the partition description.
func (p UserPartition) Description() string {
	return p.description
}

// Groups returns the partition's groups in order. The returned slice is a
// copy; mutating it does not affect the partition.
func (p UserPartition) Groups() []Group {
	groups := make([]Group, len(p.groups))
	copy(groups, p.groups)
	return groups
}

// Scheme returns the scheme used to assign users into groups.
func (p UserPartition) Scheme() Scheme {
	return p.scheme
}

// GetGroup returns the first group with the specified id, or nil if none
// matches. Linear scan: group counts are small and lookups infrequent.
func (p UserPartition) GetGroup(id GroupID) *Group {
	for i := range p.groups {
		if p.groups[i].id == id {
			g := p.groups[i]
			return &g
		}
	}
	return nil
}

// ToJSON serializes the partition to a json-serializable mapping.
// The scheme is serialized by name only; deserialization resolves it back
// through the registry.
func (p UserPartition) ToJSON() map[string]any {
	groups := make([]any, len(p.groups))
	for i, g := range p.groups {
		groups[i] = g.ToJSON()
	}

	var schemeName string
	if p.scheme != nil {
		schemeName = p.scheme.Name()
	}

	return map[string]any{
		"id":          int(p.id),
		"name":        p.name,
		"description": p.description,
		"groups":      groups,
		"scheme":      schemeName,
		"version":     PartitionVersion,
	}
}

// PartitionFromJSON deserializes a UserPartition from a json-like
// representation. Passing an already-constructed UserPartition returns it
// unchanged.
//
// Version 1 values carry no scheme field and get the Version1SchemeID
// default; version 2 values must name their scheme. Any other version fails
// with ErrUnexpectedVersion. Deserialization either fully succeeds or fails
// atomically; no partially-built partition escapes.
func PartitionFromJSON(value any) (UserPartition, error) {
	switch v := value.(type) {
	case UserPartition:
		return v, nil
	case *UserPartition:
		if v != nil {
			return *v, nil
		}
		return UserPartition{}, fmt.Errorf("%w: nil partition", ErrMalformedValue)
	case map[string]any:
		return partitionFromMap(v)
	default:
		return UserPartition{}, fmt.Errorf("%w: partition value %v (%T) is not a mapping", ErrMalformedValue, value, value)
	}
}

func partitionFromMap(value map[string]any) (UserPartition, error) {
	for _, key := range []string{"id", "name", "description", "version", "groups"} {
		if _, ok := value[key]; !ok {
			return UserPartition{}, fmt.Errorf("%w: user partition dict %v missing value key %q", ErrMissingKey, value, key)
		}
	}

	version, ok := versionOf(value["version"])
	if !ok {
		return UserPartition{}, fmt.Errorf("%w: user partition dict %v", ErrUnexpectedVersion, value)
	}

	var schemeID string
	switch version {
	case 1:
		// Version 1 predates schemes entirely.
		schemeID = Version1SchemeID
	case PartitionVersion:
		raw, ok := value["scheme"]
		if !ok {
			return UserPartition{}, fmt.Errorf("%w: user partition dict %v missing value key %q", ErrMissingKey, value, "scheme")
		}
		schemeID, ok = raw.(string)
		if !ok {
			return UserPartition{}, fmt.Errorf("%w: user partition dict %v has non-string scheme", ErrMalformedValue, value)
		}
	default:
		return UserPartition{}, fmt.Errorf("%w: user partition dict %v", ErrUnexpectedVersion, value)
	}

	groups, err := groupsFromJSON(value["groups"])
	if err != nil {
		return UserPartition{}, err
	}

	name, ok := value["name"].(string)
	if !ok {
		return UserPartition{}, fmt.Errorf("%w: user partition dict %v has non-string name", ErrMalformedValue, value)
	}
	description, ok := value["description"].(string)
	if !ok {
		return UserPartition{}, fmt.Errorf("%w: user partition dict %v has non-string description", ErrMalformedValue, value)
	}

	return NewUserPartitionWithSchemeID(value["id"], name, description, groups, schemeID)
}

// groupsFromJSON decodes the groups entry of a partition mapping, preserving
// order.
func groupsFromJSON(value any) ([]Group, error) {
	switch entries := value.(type) {
	case []Group:
		groups := make([]Group, len(entries))
		copy(groups, entries)
		return groups, nil
	case []any:
		groups := make([]Group, 0, len(entries))
		for _, entry := range entries {
			g, err := GroupFromJSON(entry)
			if err != nil {
				return nil, err
			}
			groups = append(groups, g)
		}
		return groups, nil
	default:
		return nil, fmt.Errorf("%w: groups value %v (%T) is not a sequence", ErrMalformedValue, value, value)
	}
}

// Equal reports whether two partitions hold the same data. Schemes are
// compared by name, since deserialization resolves them by name.
func (p UserPartition) Equal(other UserPartition) bool {
	if p.id != other.id || p.name != other.name || p.description != other.description {
		return false
	}
	if len(p.groups) != len(other.groups) {
		return false
	}
	for i := range p.groups {
		if p.groups[i] != other.groups[i] {
			return false
		}
	}
	return schemeName(p.scheme) == schemeName(other.scheme)
}

func schemeName(s Scheme) string {
	if s == nil {
		return ""
	}
	return s.Name()
}
