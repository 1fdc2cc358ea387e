package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/store"
)

// RecipeBackend is the recipe store picked by STORE_DRIVER
type RecipeBackend interface {
	Save(ctx context.Context, r *model.Recipe) error
	Replace(ctx context.Context, r *model.Recipe) error
	FindByID(ctx context.Context, id string) (*model.Recipe, error)
	FindByName(ctx context.Context, name string) (*model.Recipe, error)
	FindAll(ctx context.Context) ([]model.Recipe, error)
	Find(ctx context.Context, clauses []filter.Clause) ([]model.Recipe, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// CloseFunc releases the connection behind a RecipeBackend
type CloseFunc func(ctx context.Context) error

// OpenRecipeBackend connects the configured store and brings its schema or
// indexes up to date.
func OpenRecipeBackend(ctx context.Context, cfg *config.Config) (RecipeBackend, CloseFunc, error) {
	opts := store.Options{CaseInsensitiveNames: cfg.NameCaseInsensitive}

	if cfg.StoreDriver == config.DriverMongo {
		client, err := NewMongoClient(cfg)
		if err != nil {
			return nil, nil, err
		}

		s := store.NewMongoStore(client.Database(cfg.MongoDatabase), opts)
		if err := s.EnsureIndexes(ctx, cfg.UniqueNameIndex); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, fmt.Errorf("failed to ensure recipe indexes: %w", err)
		}
		log.Info().Bool("unique_names", cfg.UniqueNameIndex).Msg("Recipe indexes ready")

		return s, client.Disconnect, nil
	}

	db, err := Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	closeDB := func(context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	err = Migrate(db, MigrateOptions{
		UniqueNames:          cfg.UniqueNameIndex,
		CaseInsensitiveNames: cfg.NameCaseInsensitive,
	})
	if err != nil {
		_ = closeDB(ctx)
		return nil, nil, err
	}
	log.Info().Bool("unique_names", cfg.UniqueNameIndex).Msg("Recipe table migrated")

	return store.NewSQLStore(db, opts), closeDB, nil
}
