package partition_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/learnhub/partition-hub/internal/domain/partition"
)

func TestDomainError_Matching(t *testing.T) {
	err := partition.NewDomainError("partition", "FromJSON", partition.ErrMissingKey, `missing "groups"`)

	assert.ErrorIs(t, err, partition.ErrMissingKey)
	assert.NotErrorIs(t, err, partition.ErrInvalidID)
	assert.Equal(t, `partition.FromJSON: missing "groups"`, err.Error())
}

func TestDomainError_WrapsUnderlying(t *testing.T) {
	cause := errors.New("connection refused")
	err := partition.WrapError("partition", "Save", partition.ErrPartitionNotFound, "storing partition", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, partition.ErrPartitionNotFound)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsValidation(t *testing.T) {
	for _, kind := range []error{
		partition.ErrMissingKey,
		partition.ErrUnexpectedVersion,
		partition.ErrUnrecognizedScheme,
		partition.ErrInvalidID,
		partition.ErrMalformedValue,
	} {
		assert.True(t, partition.IsValidation(fmt.Errorf("wrapped: %w", kind)), kind.Error())
	}

	assert.False(t, partition.IsValidation(partition.ErrPartitionNotFound))
	assert.False(t, partition.IsValidation(errors.New("other")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, partition.IsNotFound(fmt.Errorf("lookup: %w", partition.ErrPartitionNotFound)))
	assert.False(t, partition.IsNotFound(partition.ErrMissingKey))
}
