// Package store defines the persistence interfaces for users, card sets,
// and study records, plus the shared error taxonomy and transaction helper
// used by the postgres implementations.
package store
