package partition

import "fmt"

// GroupVersion is the current serialization version for Group.
// Serialized groups live inside course content, so old versions must keep
// deserializing; bumping this requires an upgrade path in GroupFromJSON.
const GroupVersion = 1

// Group is an id and name for a group of students. The id should be unique
// within the UserPartition this group appears in. Immutable after
// construction.
type Group struct {
	id   GroupID
	name string
}

// NewGroup creates a Group, coercing id to an integer.
// Returns ErrInvalidID if id is not representable as an integer.
func NewGroup(id any, name string) (Group, error) {
	gid, err := NewGroupID(id)
	if err != nil {
		return Group{}, err
	}
	return Group{id: gid, name: name}, nil
}

// MustGroup is like NewGroup but panics on an invalid id.
// Intended for literals in tests and fixtures.
func MustGroup(id any, name string) Group {
	g, err := NewGroup(id, name)
	if err != nil {
		panic(err)
	}
	return g
}

// ID returns the group id.
func (g Group) ID() GroupID {
	return g.id
}

// Name returns the group name.
func (g Group) Name() string {
	return g.name
}

// ToJSON serializes the group to a json-serializable mapping.
func (g Group) ToJSON() map[string]any {
	return map[string]any{
		"id":      int(g.id),
		"name":    g.name,
		"version": GroupVersion,
	}
}

// GroupFromJSON deserializes a Group from a json-like representation.
// Passing an already-constructed Group returns it unchanged.
//
// Fails with ErrMissingKey when a required key is absent,
// ErrUnexpectedVersion when the version is not GroupVersion, and
// ErrInvalidID when the id cannot be coerced to an integer.
func GroupFromJSON(value any) (Group, error) {
	switch v := value.(type) {
	case Group:
		return v, nil
	case *Group:
		if v != nil {
			return *v, nil
		}
		return Group{}, fmt.Errorf("%w: nil group", ErrMalformedValue)
	case map[string]any:
		return groupFromMap(v)
	default:
		return Group{}, fmt.Errorf("%w: group value %v (%T) is not a mapping", ErrMalformedValue, value, value)
	}
}

func groupFromMap(value map[string]any) (Group, error) {
	for _, key := range []string{"id", "name", "version"} {
		if _, ok := value[key]; !ok {
			return Group{}, fmt.Errorf("%w: group dict %v missing value key %q", ErrMissingKey, value, key)
		}
	}

	version, ok := versionOf(value["version"])
	if !ok || version != GroupVersion {
		return Group{}, fmt.Errorf("%w: group dict %v", ErrUnexpectedVersion, value)
	}

	name, ok := value["name"].(string)
	if !ok {
		return Group{}, fmt.Errorf("%w: group dict %v has non-string name", ErrMalformedValue, value)
	}

	return NewGroup(value["id"], name)
}
