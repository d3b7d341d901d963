package partition

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// ID Value Objects
// ══════════════════════════════════════════════════════════════════════════════

// GroupID identifies a group, unique within its owning partition.
type GroupID int

// Int returns the underlying int value.
func (g GroupID) Int() int {
	return int(g)
}

// String returns the string representation.
func (g GroupID) String() string {
	return strconv.Itoa(int(g))
}

// NewGroupID coerces an arbitrary decoded value to a GroupID.
// Returns ErrInvalidID if the value is not representable as an integer.
func NewGroupID(v any) (GroupID, error) {
	n, err := coerceInt(v)
	if err != nil {
		return 0, fmt.Errorf("group id %v: %w", v, err)
	}
	return GroupID(n), nil
}

// PartitionID identifies a partition, unique within its context
// (e.g. per course).
type PartitionID int

// Int returns the underlying int value.
func (p PartitionID) Int() int {
	return int(p)
}

// String returns the string representation.
func (p PartitionID) String() string {
	return strconv.Itoa(int(p))
}

// NewPartitionID coerces an arbitrary decoded value to a PartitionID.
// Returns ErrInvalidID if the value is not representable as an integer.
func NewPartitionID(v any) (PartitionID, error) {
	n, err := coerceInt(v)
	if err != nil {
		return 0, fmt.Errorf("partition id %v: %w", v, err)
	}
	return PartitionID(n), nil
}

// versionOf reads a decoded version number. Unlike ids, versions are written
// by this code as plain integers and never as strings, so only genuinely
// numeric shapes are accepted.
func versionOf(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}

// coerceInt converts the numeric shapes a decoded JSON mapping (or direct
// caller) may hand us into an int. Floats must be integral; strings must
// parse as base-10 integers.
func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidID, n)
		}
		return int(n), nil
	case float32:
		f := float64(n)
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidID, n)
		}
		return int(f), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidID, n.String(), err)
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidID, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: cannot coerce %T to integer", ErrInvalidID, v)
	}
}
