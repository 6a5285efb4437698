package main

import (
	"log"
	"os"
	"time"

	"farmingpro/internal/container"
	"farmingpro/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/urfave/cli/v2"
	tele "gopkg.in/telebot.v3"
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
	app := &cli.App{
		Name: "bot-telegram",
		Commands: []*cli.Command{
			commandBot(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandBot() *cli.Command {
	return &cli.Command{
		Name:   "server",
		Action: action,
	}
}

func action(c *cli.Context) error {
	vs, err := container.Envs(
		"BOT_TOKEN",
		"JWT_SECRET",
		"DB_DSN",
		"BOT_USERNAME",
	)
	if err != nil {
		return err
	}
	injector := container.New(vs)
	lg := do.MustInvoke[*logger.Logger](injector)

	b, err := tele.NewBot(tele.Settings{
		Token:  vs["BOT_TOKEN"],
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			lg.WithError(err).Error("telebot")
		},
	})
	if err != nil {
		return err
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Callback() != nil {
				defer c.Respond()
			}

			c.Set(contextContainer, injector)
			return next(c)
		}
	})

	cmd := &commands{
		webAppURL:   vs["TELEGRAM_WEB_APP_URL"],
		botUsername: vs["BOT_USERNAME"],
		logger:      lg,
	}
	b.Handle("/start", cmd.Start)
	b.Handle("/farm", cmd.Farm)
	b.Handle("/balance", cmd.Balance)
	b.Handle("/referral", cmd.Referral)
	b.Handle("/help", cmd.Help)
	b.Handle(tele.OnText, cmd.Unknown)

	lg.WithField("username", b.Me.Username).Info("bot started")
	b.Start()
	return nil
}
