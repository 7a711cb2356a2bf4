package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntitySpecificErrors(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrCardSetNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrStudyRecordNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrUsernameExists, ErrDuplicate)

	assert.True(t, IsNotFoundError(ErrCardSetNotFound))
	assert.True(t, IsDuplicateError(ErrUsernameExists))
	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsDuplicateError(ErrNotFound))
}

func TestStoreErrorWrapping(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection reset")
	err := NewStoreError("card_set", "create", "insert failed", inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "create operation on card_set failed")
	assert.Contains(t, err.Error(), "connection reset")

	var storeErr *StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "card_set", storeErr.Entity)

	bare := NewStoreError("user", "delete", "missing row", nil)
	assert.Equal(t, "delete operation on user failed: missing row", bare.Error())
}
