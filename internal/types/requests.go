package types

import (
	"strconv"
	"strings"

	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
)

// RecipeRequest is the body of create and update calls. Pointer fields
// distinguish a missing value from false or zero.
type RecipeRequest struct {
	Name         string   `json:"name" binding:"notblank"`
	Instructions string   `json:"instructions" binding:"notblank"`
	IsVegetarian *bool    `json:"isVegetarian" binding:"required"`
	Servings     *int     `json:"servings" binding:"required"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
}

// Fields converts a validated request to recipe fields
func (r RecipeRequest) Fields() model.RecipeFields {
	f := model.RecipeFields{
		Name:         r.Name,
		Instructions: r.Instructions,
		Ingredients:  r.Ingredients,
	}
	if r.IsVegetarian != nil {
		f.IsVegetarian = *r.IsVegetarian
	}
	if r.Servings != nil {
		f.Servings = *r.Servings
	}
	return f
}

// RecipeQuery holds the optional filter parameters of GET /recipe.
// isVegetarian and servings are bound as text so an empty value can be
// told apart from false or zero.
type RecipeQuery struct {
	IsVegetarian      *string `form:"isVegetarian"`
	Servings          *string `form:"servings"`
	IncludeIngredient *string `form:"includeIngredient"`
	ExcludeIngredient *string `form:"excludeIngredient"`
	Instruction       *string `form:"instruction"`
}

// QueryParamError reports a filter parameter that does not parse
type QueryParamError struct {
	Param string
	Type  string
}

func (e *QueryParamError) Error() string {
	return e.Param + " must be of type " + e.Type
}

// Criteria converts the query to filter criteria. Empty isVegetarian and
// servings values impose no constraint.
func (q RecipeQuery) Criteria() (filter.Criteria, error) {
	c := filter.Criteria{
		IncludeIngredient: q.IncludeIngredient,
		ExcludeIngredient: q.ExcludeIngredient,
		Instruction:       q.Instruction,
	}

	if v := present(q.IsVegetarian); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter.Criteria{}, &QueryParamError{Param: "isVegetarian", Type: "bool"}
		}
		c.IsVegetarian = &b
	}

	if v := present(q.Servings); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter.Criteria{}, &QueryParamError{Param: "servings", Type: "int"}
		}
		c.Servings = &n
	}

	return c, nil
}

func present(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
