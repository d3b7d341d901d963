package scheme_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/partition-hub/internal/domain/partition"
	"github.com/learnhub/partition-hub/internal/scheme"
)

func TestRegisterDefaults(t *testing.T) {
	reg := partition.NewSchemeRegistry()
	require.NoError(t, scheme.RegisterDefaults(reg, newMemStore()))

	assert.ElementsMatch(t,
		[]string{scheme.SchemeRandom, scheme.SchemeCohort, scheme.SchemeHash},
		reg.Names(),
	)

	for _, name := range reg.Names() {
		s, err := reg.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())

		again, err := reg.Get(name)
		require.NoError(t, err)
		assert.Same(t, s, again)
	}
}

func TestRegisterDefaults_Twice(t *testing.T) {
	reg := partition.NewSchemeRegistry()
	store := newMemStore()
	require.NoError(t, scheme.RegisterDefaults(reg, store))

	err := scheme.RegisterDefaults(reg, store)
	assert.ErrorIs(t, err, partition.ErrSchemeExists)
}
