package service

import (
	"database/sql"

	"github.com/reciteapp/recite-api/internal/store"
)

// CardSetRepositoryAdapter pairs a CardSetStore with its underlying
// connection so services can open transactions against it.
type CardSetRepositoryAdapter struct {
	store.CardSetStore
	db *sql.DB
}

// NewCardSetRepositoryAdapter creates a CardSetRepository from a store and
// its database connection.
func NewCardSetRepositoryAdapter(s store.CardSetStore, db *sql.DB) *CardSetRepositoryAdapter {
	return &CardSetRepositoryAdapter{CardSetStore: s, db: db}
}

// DB returns the underlying database connection.
func (a *CardSetRepositoryAdapter) DB() *sql.DB { return a.db }

var _ CardSetRepository = (*CardSetRepositoryAdapter)(nil)
