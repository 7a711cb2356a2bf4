// Package postgres provides PostgreSQL implementations of the store
// interfaces. All implementations use the standard database/sql package
// with the pgx driver, translate driver errors through MapError, and can
// be bound to a caller-managed transaction via WithTx.
package postgres
