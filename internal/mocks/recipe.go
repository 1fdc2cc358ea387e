package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
)

// MockRecipeStore is a mock implementation of the recipe store
type MockRecipeStore struct {
	mock.Mock
}

// Save mocks the Save method
func (m *MockRecipeStore) Save(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

// Replace mocks the Replace method
func (m *MockRecipeStore) Replace(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

// FindByID mocks the FindByID method
func (m *MockRecipeStore) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// FindByName mocks the FindByName method
func (m *MockRecipeStore) FindByName(ctx context.Context, name string) (*model.Recipe, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// FindAll mocks the FindAll method
func (m *MockRecipeStore) FindAll(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// Find mocks the Find method
func (m *MockRecipeStore) Find(ctx context.Context, clauses []filter.Clause) ([]model.Recipe, error) {
	args := m.Called(ctx, clauses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// Delete mocks the Delete method
func (m *MockRecipeStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// Create mocks the Create method
func (m *MockRecipeService) Create(ctx context.Context, fields model.RecipeFields) (*model.Recipe, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// Update mocks the Update method
func (m *MockRecipeService) Update(ctx context.Context, id string, fields model.RecipeFields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

// Remove mocks the Remove method
func (m *MockRecipeService) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FindAll mocks the FindAll method
func (m *MockRecipeService) FindAll(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// Find mocks the Find method
func (m *MockRecipeService) Find(ctx context.Context, criteria filter.Criteria) ([]model.Recipe, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}
