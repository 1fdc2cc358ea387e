// Package store holds the recipe persistence backends: a MongoDB
// collection and a gorm-managed SQL table (PostgreSQL or SQLite).
package store

import "errors"

var (
	// ErrNotFound is returned when no recipe matches the lookup.
	ErrNotFound = errors.New("store: recipe not found")
	// ErrDuplicate is returned when a write violates the unique name index.
	ErrDuplicate = errors.New("store: duplicate recipe name")
)

// CollectionName is the Mongo collection and SQL table that holds recipes
const CollectionName = "recipes"

// Options tune lookup semantics shared by every backend
type Options struct {
	// CaseInsensitiveNames makes FindByName ignore letter case.
	CaseInsensitiveNames bool
}
