package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "migrate",
		Usage: "Create the recipes table or collection indexes for the configured store",
		Description: `Uses the same environment as the API server. STORE_DRIVER selects the
backend; RECIPE_UNIQUE_NAME_INDEX and RECIPE_NAME_CASE_INSENSITIVE control
the name index. Safe to run repeatedly.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "driver",
				Usage: "Override STORE_DRIVER (mongo, postgres or sqlite)",
			},
			&cli.BoolFlag{
				Name:  "unique-names",
				Usage: "Force the unique recipe name index on",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if driver := cmd.String("driver"); driver != "" {
				if err := os.Setenv("STORE_DRIVER", driver); err != nil {
					return err
				}
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger.Init(cfg.Env, cfg.LogLevel)
			if cmd.Bool("unique-names") {
				cfg.UniqueNameIndex = true
			}

			_, closeBackend, err := database.OpenRecipeBackend(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeBackend(context.Background()) }()

			log.Info().Str("driver", cfg.StoreDriver).Msg("Migrations applied successfully")
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
