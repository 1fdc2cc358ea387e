// Package filter turns optional recipe query inputs into a list of
// AND-combined clauses that each store translates to its own query language.
package filter

import (
	"fmt"
	"regexp"

	"github.com/pageza/recipebox/backend/internal/model"
)

// Field names a filterable recipe attribute. The values double as the
// document keys used by the Mongo store.
type Field string

const (
	FieldIsVegetarian Field = "isVegetarian"
	FieldServings     Field = "servings"
	FieldIngredients  Field = "ingredients"
	FieldInstructions Field = "instructions"
)

// Op is the comparison a clause applies to its field
type Op int

const (
	// Eq is an exact match on a scalar field.
	Eq Op = iota
	// Contains requires the list field to hold the value.
	Contains
	// NotContains requires the list field not to hold the value.
	NotContains
	// Matches applies a case-sensitive regular expression to a text field.
	Matches
)

func (o Op) String() string {
	switch o {
	case Eq:
		return "eq"
	case Contains:
		return "contains"
	case NotContains:
		return "not_contains"
	case Matches:
		return "matches"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Clause is a single condition over one field
type Clause struct {
	Field Field
	Op    Op
	Value interface{}
}

// Criteria holds the optional filter inputs. A nil field imposes no constraint.
type Criteria struct {
	IsVegetarian      *bool
	Servings          *int
	IncludeIngredient *string
	ExcludeIngredient *string
	Instruction       *string
}

// IsEmpty reports whether no constraint is set
func (c Criteria) IsEmpty() bool {
	return c.IsVegetarian == nil &&
		c.Servings == nil &&
		c.IncludeIngredient == nil &&
		c.ExcludeIngredient == nil &&
		c.Instruction == nil
}

// Build returns one clause per present criterion, in a fixed order.
// Include and exclude of the same ingredient are both emitted.
func Build(c Criteria) []Clause {
	var clauses []Clause
	if c.IsVegetarian != nil {
		clauses = append(clauses, Clause{Field: FieldIsVegetarian, Op: Eq, Value: *c.IsVegetarian})
	}
	if c.Servings != nil {
		clauses = append(clauses, Clause{Field: FieldServings, Op: Eq, Value: *c.Servings})
	}
	if c.IncludeIngredient != nil {
		clauses = append(clauses, Clause{Field: FieldIngredients, Op: Contains, Value: *c.IncludeIngredient})
	}
	if c.ExcludeIngredient != nil {
		clauses = append(clauses, Clause{Field: FieldIngredients, Op: NotContains, Value: *c.ExcludeIngredient})
	}
	if c.Instruction != nil {
		clauses = append(clauses, Clause{Field: FieldInstructions, Op: Matches, Value: *c.Instruction})
	}
	return clauses
}

// Predicate reports whether a recipe satisfies a set of clauses
type Predicate func(r *model.Recipe) bool

// Compile builds an in-memory predicate for clauses. It fails when a
// Matches clause carries an invalid pattern or a clause is malformed.
func Compile(clauses []Clause) (Predicate, error) {
	tests := make([]Predicate, 0, len(clauses))
	for _, cl := range clauses {
		p, err := compileClause(cl)
		if err != nil {
			return nil, err
		}
		tests = append(tests, p)
	}

	return func(r *model.Recipe) bool {
		for _, test := range tests {
			if !test(r) {
				return false
			}
		}
		return true
	}, nil
}

func compileClause(cl Clause) (Predicate, error) {
	switch cl.Op {
	case Eq:
		switch cl.Field {
		case FieldIsVegetarian:
			v, ok := cl.Value.(bool)
			if !ok {
				return nil, fmt.Errorf("filter: %s expects a bool, got %T", cl.Field, cl.Value)
			}
			return func(r *model.Recipe) bool { return r.IsVegetarian == v }, nil
		case FieldServings:
			v, ok := cl.Value.(int)
			if !ok {
				return nil, fmt.Errorf("filter: %s expects an int, got %T", cl.Field, cl.Value)
			}
			return func(r *model.Recipe) bool { return r.Servings == v }, nil
		}
	case Contains, NotContains:
		if cl.Field != FieldIngredients {
			break
		}
		v, ok := cl.Value.(string)
		if !ok {
			return nil, fmt.Errorf("filter: %s expects a string, got %T", cl.Field, cl.Value)
		}
		want := cl.Op == Contains
		return func(r *model.Recipe) bool { return r.Ingredients.Contains(v) == want }, nil
	case Matches:
		if cl.Field != FieldInstructions {
			break
		}
		v, ok := cl.Value.(string)
		if !ok {
			return nil, fmt.Errorf("filter: %s expects a string, got %T", cl.Field, cl.Value)
		}
		re, err := regexp.Compile(v)
		if err != nil {
			return nil, fmt.Errorf("filter: invalid instruction pattern: %w", err)
		}
		return func(r *model.Recipe) bool { return re.MatchString(r.Instructions) }, nil
	}
	return nil, fmt.Errorf("filter: unsupported clause %s on %s", cl.Op, cl.Field)
}
