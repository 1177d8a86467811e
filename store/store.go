// Package store is the persistence surface for the fleet ledger. Mutations of
// financial source records (expenses, capital entries) run inside one
// transaction together with the derived cash-ledger sync, so either both
// commit or neither does.
package store

import "gorm.io/gorm"

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for read-only collaborators.
func (s *Store) DB() *gorm.DB {
	return s.db
}
