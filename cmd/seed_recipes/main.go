package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

func main() {
	_ = godotenv.Load()

	if err := seedCmd().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
}

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed_recipes",
		Usage: "Load recipes from a JSON file into the configured store",
		Description: `Reads a JSON array of recipes shaped like the POST /v1/recipe body and
creates each one. Invalid entries and names that already exist are skipped
and reported.

Example:
  seed_recipes --file cmd/seed_recipes/recipes.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Path to the JSON array of recipes",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Validate the file without writing anything",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger.Init(cfg.Env, cfg.LogLevel)

			recipes, err := readRecipes(cmd.String("file"))
			if err != nil {
				return err
			}

			if cmd.Bool("dry-run") {
				r := validateAll(recipes)
				log.Info().Int("valid", len(recipes)-r.Invalid).Int("invalid", r.Invalid).Msg("Dry run finished")
				return nil
			}

			backend, closeBackend, err := database.OpenRecipeBackend(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to open recipe store: %w", err)
			}
			defer func() { _ = closeBackend(context.Background()) }()

			r, err := seed(ctx, service.NewRecipeService(backend), recipes)
			log.Info().
				Int("created", r.Created).
				Int("duplicates", r.Duplicates).
				Int("invalid", r.Invalid).
				Msg("Seeding finished")
			return err
		},
	}
}

type report struct {
	Created    int
	Duplicates int
	Invalid    int
}

func readRecipes(path string) ([]types.RecipeRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var recipes []types.RecipeRequest
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return recipes, nil
}

func validateAll(recipes []types.RecipeRequest) report {
	var r report
	for i, req := range recipes {
		if err := api.ValidateRecipeRequest(req); err != nil {
			log.Warn().Int("index", i).Str("name", req.Name).Err(err).Msg("Invalid recipe")
			r.Invalid++
		}
	}
	return r
}

// seed creates every valid recipe. It stops on the first store failure.
func seed(ctx context.Context, recipes service.IRecipeService, reqs []types.RecipeRequest) (report, error) {
	var r report
	for i, req := range reqs {
		if err := api.ValidateRecipeRequest(req); err != nil {
			log.Warn().Int("index", i).Str("name", req.Name).Err(err).Msg("Skipping invalid recipe")
			r.Invalid++
			continue
		}

		created, err := recipes.Create(ctx, req.Fields())
		switch {
		case errors.Is(err, service.ErrAlreadyExists):
			log.Info().Str("name", req.Name).Msg("Recipe already exists, skipping")
			r.Duplicates++
		case err != nil:
			return r, fmt.Errorf("failed to create recipe %q: %w", req.Name, err)
		default:
			log.Debug().Str("id", created.ID).Str("name", req.Name).Msg("Created recipe")
			r.Created++
		}
	}
	return r, nil
}
