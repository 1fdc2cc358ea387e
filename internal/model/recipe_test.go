package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	v, err := StringList{"salmon", "potatoes"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["salmon","potatoes"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStringListScan(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan([]byte(`["carrot","onion"]`)))
	assert.Equal(t, StringList{"carrot", "onion"}, list)

	require.NoError(t, list.Scan(`["leek"]`))
	assert.Equal(t, StringList{"leek"}, list)

	require.NoError(t, list.Scan(nil))
	assert.Empty(t, list)

	assert.Error(t, list.Scan(42))
}

func TestStringListContains(t *testing.T) {
	list := StringList{"carrot", "onion"}
	assert.True(t, list.Contains("carrot"))
	assert.False(t, list.Contains("Carrot"))
	assert.False(t, StringList(nil).Contains("carrot"))
}

func TestWithFieldsKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	existing := Recipe{
		ID:           "123",
		CreatedAt:    created,
		Name:         "old",
		Instructions: "old steps",
		Servings:     1,
		Ingredients:  StringList{"salt"},
	}

	updated := existing.WithFields(RecipeFields{
		Name:         "salmon recipe",
		Instructions: "put the salmon on the oven",
		IsVegetarian: false,
		Servings:     2,
		Ingredients:  []string{"salmon", "potatoes"},
	})

	assert.Equal(t, "123", updated.ID)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, "salmon recipe", updated.Name)
	assert.Equal(t, "put the salmon on the oven", updated.Instructions)
	assert.Equal(t, 2, updated.Servings)
	assert.Equal(t, StringList{"salmon", "potatoes"}, updated.Ingredients)

	// the original value is untouched
	assert.Equal(t, "old", existing.Name)
}

func TestNewRecipeCopiesIngredients(t *testing.T) {
	ingredients := []string{"carrot"}
	r := NewRecipe(RecipeFields{Name: "soup", Ingredients: ingredients})
	ingredients[0] = "beef"

	assert.Empty(t, r.ID)
	assert.Equal(t, StringList{"carrot"}, r.Ingredients)
}
