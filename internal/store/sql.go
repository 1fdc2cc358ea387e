package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
)

var columns = map[filter.Field]string{
	filter.FieldIsVegetarian: "is_vegetarian",
	filter.FieldServings:     "servings",
	filter.FieldIngredients:  "ingredients",
	filter.FieldInstructions: "instructions",
}

// SQLStore keeps recipes in a relational table through gorm. The ingredient
// list is a JSON array column; filters use the dialect's JSON functions.
type SQLStore struct {
	db   *gorm.DB
	opts Options
}

// NewSQLStore creates a store over db. The recipes table must already exist
// (see database.Migrate).
func NewSQLStore(db *gorm.DB, opts Options) *SQLStore {
	return &SQLStore{db: db, opts: opts}
}

func (s *SQLStore) Save(ctx context.Context, r *model.Recipe) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		r.ID = ""
		return translateError(err)
	}
	return nil
}

func (s *SQLStore) Replace(ctx context.Context, r *model.Recipe) error {
	result := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("id = ?", r.ID).
		Select("name", "instructions", "is_vegetarian", "servings", "ingredients", "updated_at").
		Updates(r)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &recipe, nil
}

func (s *SQLStore) FindByName(ctx context.Context, name string) (*model.Recipe, error) {
	query := s.db.WithContext(ctx)
	if s.opts.CaseInsensitiveNames {
		query = query.Where("LOWER(name) = LOWER(?)", name)
	} else {
		query = query.Where("name = ?", name)
	}

	var recipe model.Recipe
	if err := query.First(&recipe).Error; err != nil {
		return nil, translateError(err)
	}
	return &recipe, nil
}

func (s *SQLStore) FindAll(ctx context.Context) ([]model.Recipe, error) {
	return s.Find(ctx, nil)
}

func (s *SQLStore) Find(ctx context.Context, clauses []filter.Clause) ([]model.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{})

	// clauses the dialect cannot express run in memory after the query
	var deferred []filter.Clause
	for _, cl := range clauses {
		sql, args, ok, err := s.clauseSQL(cl)
		if err != nil {
			return nil, err
		}
		if !ok {
			deferred = append(deferred, cl)
			continue
		}
		query = query.Where(sql, args...)
	}

	match, err := filter.Compile(deferred)
	if err != nil {
		return nil, err
	}

	var rows []model.Recipe
	if err := query.Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(deferred) == 0 {
		return rows, nil
	}

	recipes := make([]model.Recipe, 0, len(rows))
	for i := range rows {
		if match(&rows[i]) {
			recipes = append(recipes, rows[i])
		}
	}
	return recipes, nil
}

// Delete removes the recipe with id. Unknown ids are a no-op.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// clauseSQL returns the WHERE fragment for cl. ok is false when the clause
// must be evaluated in memory instead.
func (s *SQLStore) clauseSQL(cl filter.Clause) (sql string, args []interface{}, ok bool, err error) {
	col, known := columns[cl.Field]
	if !known {
		return "", nil, false, fmt.Errorf("sql: unknown filter field %s", cl.Field)
	}
	postgres := s.db.Dialector.Name() == "postgres"

	switch cl.Op {
	case filter.Eq:
		return col + " = ?", []interface{}{cl.Value}, true, nil
	case filter.Contains, filter.NotContains:
		var cond string
		var arg interface{} = cl.Value
		if postgres {
			b, err := json.Marshal([]interface{}{cl.Value})
			if err != nil {
				return "", nil, false, err
			}
			cond = col + " @> ?::jsonb"
			arg = string(b)
		} else {
			cond = "EXISTS (SELECT 1 FROM json_each(" + col + ") WHERE json_each.value = ?)"
		}
		if cl.Op == filter.NotContains {
			cond = "NOT (" + cond + ")"
		}
		return cond, []interface{}{arg}, true, nil
	case filter.Matches:
		if postgres {
			return col + " ~ ?", []interface{}{cl.Value}, true, nil
		}
		// SQLite ships without a REGEXP implementation
		return "", nil, false, nil
	default:
		return "", nil, false, fmt.Errorf("sql: unsupported clause %s on %s", cl.Op, cl.Field)
	}
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
