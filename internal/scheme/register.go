package scheme

import "github.com/learnhub/partition-hub/internal/domain/partition"

// Names of the built-in schemes.
const (
	SchemeRandom = "random"
	SchemeCohort = "cohort"
	SchemeHash   = "hash"
)

// RegisterDefaults populates a registry with the built-in schemes. Call it
// once at process start, before any partition is constructed or
// deserialized; the random scheme persists assignments through store.
func RegisterDefaults(reg *partition.SchemeRegistry, store partition.AssignmentStore) error {
	extensions := []*partition.Extension{
		{
			Name: SchemeRandom,
			New: func(ext *partition.Extension) (partition.Scheme, error) {
				return NewRandom(ext, store), nil
			},
		},
		{
			Name: SchemeCohort,
			New: func(ext *partition.Extension) (partition.Scheme, error) {
				return NewCohort(ext), nil
			},
		},
		{
			Name: SchemeHash,
			New: func(ext *partition.Extension) (partition.Scheme, error) {
				return NewHash(ext), nil
			},
		},
	}

	for _, ext := range extensions {
		if err := reg.Register(ext); err != nil {
			return err
		}
	}
	return nil
}
