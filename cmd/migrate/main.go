package main

import (
	"context"
	"log"
	"os"

	"farmingpro/internal/container"
	"farmingpro/internal/datastore"
	"farmingpro/internal/interfaces"
	"farmingpro/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	vs, err := container.Envs(
		"BOT_TOKEN",
		"JWT_SECRET",
		"DB_DSN",
	)
	if err != nil {
		log.Fatal(err)
	}

	injector := container.New(vs)

	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(injector),
			commandSeed(injector),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration(injector *do.Injector) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create tables and indexes",
		Action: func(c *cli.Context) error {
			db, err := do.Invoke[*bun.DB](injector)
			if err != nil {
				return err
			}

			if err := datastore.CreateTables(context.Background(), db); err != nil {
				return err
			}

			do.MustInvoke[*logger.Logger](injector).Info("tables created")
			return nil
		},
	}
}

func commandSeed(injector *do.Injector) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "insert the default tasks, boosts and settings",
		Action: func(c *cli.Context) error {
			repo, err := do.Invoke[interfaces.Repository](injector)
			if err != nil {
				return err
			}
			clock, err := do.Invoke[interfaces.Clock](injector)
			if err != nil {
				return err
			}

			if err := datastore.Seed(context.Background(), repo, clock.Now()); err != nil {
				return err
			}

			do.MustInvoke[*logger.Logger](injector).Info("seed done")
			return nil
		},
	}
}
