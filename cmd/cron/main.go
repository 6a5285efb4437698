package main

import (
	"log"
	"os"

	"farmingpro/internal/container"
	"farmingpro/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
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

type CronJob interface {
	Start(cronRunner *cron.Cron) error
}

func main() {
	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob() *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			vs, err := container.Envs(
				"BOT_TOKEN",
				"JWT_SECRET",
				"DB_DSN",
			)
			if err != nil {
				return err
			}
			injector := container.New(vs)
			log := do.MustInvoke[*logger.Logger](injector)

			jobs := []CronJob{
				NewBoostExpiryJob(injector),
				NewStatsJob(injector),
			}

			cronRunner := cron.New()
			for _, job := range jobs {
				if err := job.Start(cronRunner); err != nil {
					return err
				}
			}

			log.Info("start cronjob")
			cronRunner.Run()
			return nil
		},
	}
}
