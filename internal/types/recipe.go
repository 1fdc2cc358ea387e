package types

import "github.com/pageza/recipebox/backend/internal/model"

// RecipeResponse is the wire representation of a recipe returned by list
// and filter endpoints. The store id is not exposed.
type RecipeResponse struct {
	Name         string   `json:"name"`
	Instructions string   `json:"instructions"`
	IsVegetarian bool     `json:"isVegetarian"`
	Servings     int      `json:"servings"`
	Ingredients  []string `json:"ingredients"`
}

// NewRecipeResponse converts a stored recipe to its wire representation
func NewRecipeResponse(r model.Recipe) RecipeResponse {
	ingredients := []string(r.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	return RecipeResponse{
		Name:         r.Name,
		Instructions: r.Instructions,
		IsVegetarian: r.IsVegetarian,
		Servings:     r.Servings,
		Ingredients:  ingredients,
	}
}

// NewRecipeResponses converts a list of recipes, never returning nil
func NewRecipeResponses(recipes []model.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, NewRecipeResponse(r))
	}
	return out
}

// MessageResponse is the body of confirmations and errors
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
