package code

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWithDetailsDoesNotMutateBase(t *testing.T) {
	detailed := ErrDuplicateName.WithDetails("category: Work")

	assert.Equal(t, ErrDuplicateName.Code(), detailed.Code())
	assert.Equal(t, []string{"category: Work"}, detailed.Details())
	assert.Empty(t, ErrDuplicateName.Details())
}

func TestIsMatchesThroughWrapping(t *testing.T) {
	err := errors.Wrap(ErrProtectedEntity.WithDetails("cat_default"), "delete category")

	assert.True(t, IsProtectedEntity(err))
	assert.False(t, IsDuplicateName(err))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewError(20101, "reused")
	})
}
