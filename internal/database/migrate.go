package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/model"
)

// MigrateOptions controls the optional name index
type MigrateOptions struct {
	UniqueNames          bool
	CaseInsensitiveNames bool
}

const uniqueNameIndex = "idx_recipes_name_unique"

// Migrate creates or updates the recipes table. With UniqueNames set, a
// unique index on name (or LOWER(name)) is added.
func Migrate(db *gorm.DB, opts MigrateOptions) error {
	if err := db.AutoMigrate(&model.Recipe{}); err != nil {
		return fmt.Errorf("failed to migrate recipes table: %w", err)
	}

	if !opts.UniqueNames {
		return nil
	}

	expr := "name"
	if opts.CaseInsensitiveNames {
		expr = "LOWER(name)"
	}
	stmt := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON recipes (%s)", uniqueNameIndex, expr)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create unique name index: %w", err)
	}

	log.Info().Str("index", uniqueNameIndex).Str("expr", expr).Msg("Ensured unique recipe name index")
	return nil
}
