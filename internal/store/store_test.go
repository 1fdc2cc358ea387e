package store_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/store"
	"github.com/pageza/recipebox/backend/internal/testdb"
)

type recipeStore interface {
	Save(ctx context.Context, r *model.Recipe) error
	Replace(ctx context.Context, r *model.Recipe) error
	FindByID(ctx context.Context, id string) (*model.Recipe, error)
	FindByName(ctx context.Context, name string) (*model.Recipe, error)
	FindAll(ctx context.Context) ([]model.Recipe, error)
	Find(ctx context.Context, clauses []filter.Clause) ([]model.Recipe, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

func vegetableSoup() *model.Recipe {
	return model.NewRecipe(model.RecipeFields{
		Name:         "vegetable soup",
		Instructions: "boil the vegetables in the pot",
		IsVegetarian: true,
		Servings:     4,
		Ingredients:  []string{"carrot", "onion", "potatoes"},
	})
}

func salmonRecipe() *model.Recipe {
	return model.NewRecipe(model.RecipeFields{
		Name:         "salmon recipe",
		Instructions: "put the salmon on the oven",
		IsVegetarian: false,
		Servings:     2,
		Ingredients:  []string{"salmon", "potatoes"},
	})
}

func names(recipes []model.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Name)
	}
	sort.Strings(out)
	return out
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int { return &i }
func strPtr(s string) *string { return &s }

// runStoreContract exercises behaviour every backend must share
func runStoreContract(t *testing.T, s recipeStore) {
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	soup := vegetableSoup()
	require.NoError(t, s.Save(ctx, soup))
	require.NotEmpty(t, soup.ID)

	salmon := salmonRecipe()
	require.NoError(t, s.Save(ctx, salmon))
	require.NotEmpty(t, salmon.ID)
	assert.NotEqual(t, soup.ID, salmon.ID)

	t.Run("find by id and name", func(t *testing.T) {
		got, err := s.FindByID(ctx, soup.ID)
		require.NoError(t, err)
		assert.Equal(t, "vegetable soup", got.Name)
		assert.Equal(t, "boil the vegetables in the pot", got.Instructions)
		assert.True(t, got.IsVegetarian)
		assert.Equal(t, 4, got.Servings)
		assert.Equal(t, model.StringList{"carrot", "onion", "potatoes"}, got.Ingredients)

		got, err = s.FindByName(ctx, "salmon recipe")
		require.NoError(t, err)
		assert.Equal(t, salmon.ID, got.ID)

		_, err = s.FindByName(ctx, "Salmon Recipe")
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.FindByID(ctx, "does-not-exist")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("filters", func(t *testing.T) {
		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"salmon recipe", "vegetable soup"}, names(all))

		got, err := s.Find(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, names(all), names(got))

		cases := []struct {
			name     string
			criteria filter.Criteria
			want     []string
		}{
			{"non vegetarian", filter.Criteria{IsVegetarian: boolPtr(false)}, []string{"salmon recipe"}},
			{"servings", filter.Criteria{Servings: intPtr(4)}, []string{"vegetable soup"}},
			{"include carrot", filter.Criteria{IncludeIngredient: strPtr("carrot")}, []string{"vegetable soup"}},
			{"exclude carrot for two", filter.Criteria{ExcludeIngredient: strPtr("carrot"), Servings: intPtr(2)}, []string{"salmon recipe"}},
			{"include and exclude same", filter.Criteria{IncludeIngredient: strPtr("potatoes"), ExcludeIngredient: strPtr("potatoes")}, []string{}},
			{"instruction", filter.Criteria{Instruction: strPtr("oven")}, []string{"salmon recipe"}},
			{"instruction is case sensitive", filter.Criteria{Instruction: strPtr("OVEN")}, []string{}},
			{"instruction pattern", filter.Criteria{Instruction: strPtr("^boil")}, []string{"vegetable soup"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := s.Find(ctx, filter.Build(tc.criteria))
				require.NoError(t, err)
				assert.Equal(t, tc.want, names(got))
			})
		}
	})

	t.Run("replace", func(t *testing.T) {
		updated := soup.WithFields(model.RecipeFields{
			Name:         "carrot soup",
			Instructions: "blend the carrots",
			IsVegetarian: false,
			Servings:     3,
			Ingredients:  []string{"carrot"},
		})
		require.NoError(t, s.Replace(ctx, &updated))

		got, err := s.FindByName(ctx, "carrot soup")
		require.NoError(t, err)
		assert.Equal(t, soup.ID, got.ID)
		assert.Equal(t, "blend the carrots", got.Instructions)
		assert.False(t, got.IsVegetarian)
		assert.Equal(t, 3, got.Servings)
		assert.Equal(t, model.StringList{"carrot"}, got.Ingredients)

		_, err = s.FindByName(ctx, "vegetable soup")
		assert.ErrorIs(t, err, store.ErrNotFound)

		missing := salmon.WithFields(model.RecipeFields{Name: "ghost"})
		missing.ID = "000000000000000000000000"
		assert.ErrorIs(t, s.Replace(ctx, &missing), store.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, salmon.ID))
		require.NoError(t, s.Delete(ctx, salmon.ID))
		require.NoError(t, s.Delete(ctx, "not-an-id"))

		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"carrot soup"}, names(all))
	})
}

// runUniqueNameContract checks the optional unique index
func runUniqueNameContract(t *testing.T, s recipeStore) {
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, salmonRecipe()))

	dup := salmonRecipe()
	dup.Name = "SALMON RECIPE"
	err := s.Save(ctx, dup)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	got, err := s.FindByName(ctx, "Salmon Recipe")
	require.NoError(t, err)
	assert.Equal(t, "salmon recipe", got.Name)
}

func TestSQLiteStore(t *testing.T) {
	db := testdb.SetupSQLite(t, database.MigrateOptions{})
	runStoreContract(t, store.NewSQLStore(db, store.Options{}))
}

func TestSQLiteStoreUniqueNames(t *testing.T) {
	opts := database.MigrateOptions{UniqueNames: true, CaseInsensitiveNames: true}
	db := testdb.SetupSQLite(t, opts)
	runUniqueNameContract(t, store.NewSQLStore(db, store.Options{CaseInsensitiveNames: true}))
}

func TestSQLiteStoreRejectsInvalidPattern(t *testing.T) {
	db := testdb.SetupSQLite(t, database.MigrateOptions{})
	s := store.NewSQLStore(db, store.Options{})

	_, err := s.Find(context.Background(), filter.Build(filter.Criteria{Instruction: strPtr("(")}))
	assert.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	db := testdb.SetupPostgres(t, database.MigrateOptions{})
	runStoreContract(t, store.NewSQLStore(db, store.Options{}))
}

func TestMongoStore(t *testing.T) {
	db := testdb.SetupMongo(t)
	s := store.NewMongoStore(db, store.Options{})
	require.NoError(t, s.EnsureIndexes(context.Background(), false))
	runStoreContract(t, s)
}

func TestMongoStoreUniqueNames(t *testing.T) {
	db := testdb.SetupMongo(t)
	s := store.NewMongoStore(db, store.Options{CaseInsensitiveNames: true})
	require.NoError(t, s.EnsureIndexes(context.Background(), true))
	runUniqueNameContract(t, s)
}
