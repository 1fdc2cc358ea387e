package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/recipebox/backend/internal/filter"
)

func TestFilterDocumentEmpty(t *testing.T) {
	doc, err := FilterDocument(nil)
	require.NoError(t, err)
	assert.Equal(t, bson.D{}, doc)
}

func TestFilterDocumentSingleClause(t *testing.T) {
	vegetarian := false
	doc, err := FilterDocument(filter.Build(filter.Criteria{IsVegetarian: &vegetarian}))
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "isVegetarian", Value: false}}, doc)
}

func TestFilterDocumentIngredients(t *testing.T) {
	potatoes := "potatoes"

	doc, err := FilterDocument(filter.Build(filter.Criteria{IncludeIngredient: &potatoes}))
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "ingredients", Value: bson.D{{Key: "$in", Value: bson.A{"potatoes"}}}}}, doc)

	doc, err = FilterDocument(filter.Build(filter.Criteria{ExcludeIngredient: &potatoes}))
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "ingredients", Value: bson.D{
		{Key: "$not", Value: bson.D{{Key: "$in", Value: bson.A{"potatoes"}}}},
	}}}, doc)
}

func TestFilterDocumentInstructionRegex(t *testing.T) {
	oven := "oven"
	doc, err := FilterDocument(filter.Build(filter.Criteria{Instruction: &oven}))
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "instructions", Value: primitive.Regex{Pattern: "oven"}}}, doc)
}

func TestFilterDocumentCombinesWithAnd(t *testing.T) {
	servings := 2
	carrot := "carrot"
	doc, err := FilterDocument(filter.Build(filter.Criteria{
		Servings:          &servings,
		IncludeIngredient: &carrot,
		ExcludeIngredient: &carrot,
	}))
	require.NoError(t, err)

	require.Len(t, doc, 1)
	assert.Equal(t, "$and", doc[0].Key)
	conds, ok := doc[0].Value.(bson.A)
	require.True(t, ok)
	assert.Len(t, conds, 3)
	assert.Equal(t, bson.D{{Key: "servings", Value: 2}}, conds[0])
}

func TestFilterDocumentRejectsUnknownOp(t *testing.T) {
	_, err := FilterDocument([]filter.Clause{{Field: filter.FieldServings, Op: filter.Op(42), Value: 1}})
	assert.Error(t, err)
}
