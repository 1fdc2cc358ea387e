package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a list of strings persisted as a JSON array column
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	if value == nil {
		*a = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported ingredients column type %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// Contains reports whether s is an element of the list
func (a StringList) Contains(s string) bool {
	for _, v := range a {
		if v == s {
			return true
		}
	}
	return false
}

// Recipe is the persisted recipe record. ID is assigned by the store.
type Recipe struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Name         string     `gorm:"size:255;not null;index" json:"name"`
	Instructions string     `gorm:"type:text;not null" json:"instructions"`
	IsVegetarian bool       `gorm:"not null;default:false" json:"is_vegetarian"`
	Servings     int        `gorm:"not null" json:"servings"`
	Ingredients  StringList `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeFields holds every user-editable attribute of a recipe
type RecipeFields struct {
	Name         string
	Instructions string
	IsVegetarian bool
	Servings     int
	Ingredients  []string
}

// NewRecipe builds an unsaved recipe from fields
func NewRecipe(f RecipeFields) *Recipe {
	r := &Recipe{}
	r.apply(f)
	return r
}

// WithFields returns a copy of r with all editable fields replaced by f.
// ID and CreatedAt are kept.
func (r Recipe) WithFields(f RecipeFields) Recipe {
	r.apply(f)
	return r
}

func (r *Recipe) apply(f RecipeFields) {
	r.Name = f.Name
	r.Instructions = f.Instructions
	r.IsVegetarian = f.IsVegetarian
	r.Servings = f.Servings
	r.Ingredients = append(StringList(nil), f.Ingredients...)
}
