package service

import (
	"context"

	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
)

// RecipeStore defines the persistence operations the recipe service needs.
// Lookups return store.ErrNotFound when nothing matches and writes return
// store.ErrDuplicate when a unique name index rejects them.
type RecipeStore interface {
	Save(ctx context.Context, recipe *model.Recipe) error
	Replace(ctx context.Context, recipe *model.Recipe) error
	FindByID(ctx context.Context, id string) (*model.Recipe, error)
	FindByName(ctx context.Context, name string) (*model.Recipe, error)
	FindAll(ctx context.Context) ([]model.Recipe, error)
	Find(ctx context.Context, clauses []filter.Clause) ([]model.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Create(ctx context.Context, fields model.RecipeFields) (*model.Recipe, error)
	Update(ctx context.Context, id string, fields model.RecipeFields) error
	Remove(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]model.Recipe, error)
	Find(ctx context.Context, criteria filter.Criteria) ([]model.Recipe, error)
}
