package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/mocks"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

func request(name string) types.RecipeRequest {
	veg := false
	servings := 2
	return types.RecipeRequest{
		Name:         name,
		Instructions: "put it on the oven",
		IsVegetarian: &veg,
		Servings:     &servings,
		Ingredients:  []string{"salt"},
	}
}

func TestReadRecipesBundledFile(t *testing.T) {
	recipes, err := readRecipes("recipes.json")
	require.NoError(t, err)
	assert.Len(t, recipes, 4)
	assert.Equal(t, 0, validateAll(recipes).Invalid)
}

func TestReadRecipesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"not an array"}`), 0o600))

	_, err := readRecipes(path)
	assert.Error(t, err)
}

func TestSeedReportsDuplicatesAndInvalid(t *testing.T) {
	ctx := context.Background()
	svc := new(mocks.MockRecipeService)

	invalid := request("")
	svc.On("Create", ctx, request("salmon recipe").Fields()).Return(&model.Recipe{ID: "1"}, nil)
	svc.On("Create", ctx, request("vegetable soup").Fields()).Return(nil, service.ErrAlreadyExists)

	r, err := seed(ctx, svc, []types.RecipeRequest{request("salmon recipe"), invalid, request("vegetable soup")})

	require.NoError(t, err)
	assert.Equal(t, report{Created: 1, Duplicates: 1, Invalid: 1}, r)
	svc.AssertNumberOfCalls(t, "Create", 2)
}

func TestSeedStopsOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	svc := new(mocks.MockRecipeService)
	svc.On("Create", ctx, mock.Anything).Return(nil, errors.New("connection reset"))

	r, err := seed(ctx, svc, []types.RecipeRequest{request("a"), request("b")})

	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, report{}, r)
	svc.AssertNumberOfCalls(t, "Create", 1)
}
