// Package partition contains the domain model for partitioning users into
// experiment groups: Group and UserPartition value objects with versioned
// JSON round-trips, the Scheme policy interface, and the process-wide scheme
// registry. This package is the core of the business logic and has no
// infrastructure dependencies.
package partition
