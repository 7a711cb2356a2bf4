package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/reciteapp/recite-api/internal/store"
)

func pgError(code string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, ConstraintName: "some_constraint"})
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil passes through", err: nil, want: nil},
		{name: "no rows becomes not found", err: sql.ErrNoRows, want: store.ErrNotFound},
		{name: "unique violation becomes duplicate", err: pgError(uniqueViolationCode), want: store.ErrDuplicate},
		{name: "fk violation becomes invalid entity", err: pgError(foreignKeyViolationCode), want: store.ErrInvalidEntity},
		{name: "check violation becomes invalid entity", err: pgError(checkViolationCode), want: store.ErrInvalidEntity},
		{name: "not null violation becomes invalid entity", err: pgError(notNullViolationCode), want: store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("unknown errors pass through", func(t *testing.T) {
		t.Parallel()
		err := errors.New("connection refused")
		assert.Equal(t, err, MapError(err))
	})
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	err := pgError(uniqueViolationCode)
	assert.ErrorIs(t, MapUniqueViolation(err, store.ErrUsernameExists), store.ErrUsernameExists)
	assert.ErrorIs(t, MapUniqueViolation(err, nil), store.ErrDuplicate)

	other := errors.New("timeout")
	assert.Equal(t, other, MapUniqueViolation(other, store.ErrUsernameExists))
}
