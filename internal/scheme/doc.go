// Package scheme provides the built-in user partition schemes: random
// (persisted uniform pick), cohort (group matched to the user's cohort), and
// hash (stable keyed bucketing). RegisterDefaults wires them into a registry
// at process start.
package scheme
