package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"farmingpro/internal/models"

	initdata "github.com/telegram-mini-apps/init-data-golang"
	tele "gopkg.in/telebot.v3"
)

const initDataExpiry = 24 * time.Hour

type Bot struct {
	token          string
	webAppURL      string
	skipValidation bool

	mu     sync.Mutex
	client *tele.Bot
}

func NewBot(token string, webAppURL string, skipValidation bool) (*Bot, error) {
	if token == "" {
		return nil, errors.New("bot: empty token")
	}
	return &Bot{token: token, webAppURL: webAppURL, skipValidation: skipValidation}, nil
}

// ValidateInitData checks the mini app init data signature and returns the
// Telegram user it carries.
func (bot *Bot) ValidateInitData(dataStr string) (*models.AccountFromAuth, error) {
	if !bot.skipValidation {
		err := initdata.Validate(dataStr, bot.token, initDataExpiry)
		if err != nil {
			return nil, err
		}
	}

	data, err := initdata.Parse(dataStr)
	if err != nil {
		return nil, err
	}
	if data.User.ID == 0 {
		return nil, errors.New("init data without user")
	}

	return &models.AccountFromAuth{
		ID:         data.User.ID,
		Username:   data.User.Username,
		FirstName:  data.User.FirstName,
		LastName:   data.User.LastName,
		StartParam: data.StartParam,
	}, nil
}

func (bot *Bot) tele() (*tele.Bot, error) {
	bot.mu.Lock()
	defer bot.mu.Unlock()

	if bot.client != nil {
		return bot.client, nil
	}

	b, err := tele.NewBot(tele.Settings{
		Token:   bot.token,
		Offline: true,
	})
	if err != nil {
		return nil, err
	}
	bot.client = b
	return b, nil
}

// Notify sends an HTML message with the web app button.
func (bot *Bot) Notify(ctx context.Context, chatID int64, text string) error {
	b, err := bot.tele()
	if err != nil {
		return err
	}

	_, err = b.Send(&tele.User{ID: chatID}, text, &tele.SendOptions{
		ParseMode:   tele.ModeHTML,
		ReplyMarkup: WebAppMarkup(bot.webAppURL),
	})
	return err
}

func WebAppMarkup(webAppURL string) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{
		InlineKeyboard: [][]tele.InlineButton{
			{{Text: "🚀 Open Farming Pro", WebApp: &tele.WebApp{URL: webAppURL}}},
		},
	}
}
