package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/store"
)

var (
	// ErrAlreadyExists is returned when a recipe with the same name exists
	ErrAlreadyExists = errors.New("recipe already exists")
	// ErrNotFound is returned when the referenced recipe does not exist
	ErrNotFound = errors.New("recipe doesn't exist")
)

// RecipeService handles recipe operations
type RecipeService struct {
	store RecipeStore
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(store RecipeStore) *RecipeService {
	return &RecipeService{store: store}
}

// Create stores a new recipe unless one with the same name exists. The
// lookup and the insert are separate store calls, so concurrent creates of
// one name can both succeed unless the store has a unique name index.
func (s *RecipeService) Create(ctx context.Context, fields model.RecipeFields) (*model.Recipe, error) {
	_, err := s.store.FindByName(ctx, fields.Name)
	switch {
	case err == nil:
		return nil, ErrAlreadyExists
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("failed to look up recipe name: %w", err)
	}

	log.Info().Str("name", fields.Name).Msg("Creating recipe")

	recipe := model.NewRecipe(fields)
	if err := s.store.Save(ctx, recipe); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	log.Info().Str("id", recipe.ID).Str("name", recipe.Name).Msg("Recipe created")
	return recipe, nil
}

// Update overwrites every editable field of the recipe with id
func (s *RecipeService) Update(ctx context.Context, id string, fields model.RecipeFields) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load recipe: %w", err)
	}

	log.Info().Str("id", id).Str("name", fields.Name).Msg("Updating recipe")

	updated := existing.WithFields(fields)
	if err := s.store.Replace(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, store.ErrDuplicate):
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	log.Info().Str("id", id).Str("name", updated.Name).Msg("Recipe updated")
	return nil
}

// Remove deletes the recipe with id. Removing an unknown id succeeds.
func (s *RecipeService) Remove(ctx context.Context, id string) error {
	log.Info().Str("id", id).Msg("Removing recipe")

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove recipe: %w", err)
	}

	log.Info().Str("id", id).Msg("Recipe removed")
	return nil
}

// FindAll returns every recipe in store order
func (s *RecipeService) FindAll(ctx context.Context) ([]model.Recipe, error) {
	return s.store.FindAll(ctx)
}

// Find returns the recipes matching every criterion that is set
func (s *RecipeService) Find(ctx context.Context, criteria filter.Criteria) ([]model.Recipe, error) {
	if criteria.IsEmpty() {
		return s.FindAll(ctx)
	}
	return s.store.Find(ctx, filter.Build(criteria))
}
