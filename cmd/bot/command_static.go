package main

import (
	"context"
	"errors"

	"farmingpro/internal/models"
	"farmingpro/internal/pkg/logger"
	"farmingpro/internal/services"

	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v3"
)

type commands struct {
	webAppURL   string
	botUsername string
	logger      *logger.Logger
}

func (cmd *commands) openAppMarkup() *tele.SendOptions {
	return &tele.SendOptions{
		ParseMode:   tele.ModeHTML,
		ReplyMarkup: services.WebAppMarkup(cmd.webAppURL),
	}
}

func (cmd *commands) fail(c tele.Context, err error) error {
	cmd.logger.WithError(err).WithField("chat_id", c.Chat().ID).Error("bot command")
	return c.Send(textError)
}

func (cmd *commands) account(c tele.Context) (*models.Account, error) {
	serviceAccount, err := getContextService[*services.ServiceAccount](c)
	if err != nil {
		return nil, err
	}
	return serviceAccount.FindByID(context.Background(), c.Sender().ID)
}

func (cmd *commands) Start(c tele.Context) error {
	serviceAccount, err := getContextService[*services.ServiceAccount](c)
	if err != nil {
		return cmd.fail(c, err)
	}

	sender := c.Sender()
	account, err := serviceAccount.CreateAccount(context.Background(), &models.AccountFromAuth{
		ID:        sender.ID,
		Username:  sender.Username,
		FirstName: sender.FirstName,
		LastName:  sender.LastName,
	}, services.ReferrerFromStartParam(c.Message().Payload))
	if err != nil {
		return cmd.fail(c, err)
	}

	if account.IsNewAccount {
		return c.Send(textWelcome(account.FarmingRate), cmd.openAppMarkup())
	}
	return c.Send(textWelcomeBack(account), cmd.openAppMarkup())
}

func (cmd *commands) Farm(c tele.Context) error {
	account, err := cmd.account(c)
	if errors.Is(err, services.ErrAccountNotFound) {
		return c.Send(textStartFirst)
	}
	if err != nil {
		return cmd.fail(c, err)
	}

	return c.Send(textFarm(account), cmd.openAppMarkup())
}

func (cmd *commands) Balance(c tele.Context) error {
	account, err := cmd.account(c)
	if errors.Is(err, services.ErrAccountNotFound) {
		return c.Send(textStartFirst)
	}
	if err != nil {
		return cmd.fail(c, err)
	}

	return c.Send(textBalance(account), tele.ModeHTML)
}

func (cmd *commands) Referral(c tele.Context) error {
	account, err := cmd.account(c)
	if errors.Is(err, services.ErrAccountNotFound) {
		return c.Send(textStartFirst)
	}
	if err != nil {
		return cmd.fail(c, err)
	}

	serviceReferral, err := getContextService[*services.ServiceReferral](c)
	if err != nil {
		return cmd.fail(c, err)
	}
	serviceSetting, err := getContextService[*services.ServiceSetting](c)
	if err != nil {
		return cmd.fail(c, err)
	}

	ctx := context.Background()
	stats, err := serviceReferral.Stats(ctx, account.ID)
	if err != nil {
		return cmd.fail(c, err)
	}

	var commissions [models.MaxReferralLevel]decimal.Decimal
	for level := 1; level <= models.MaxReferralLevel; level++ {
		commissions[level-1] = serviceSetting.GetDecimal(ctx, services.SettingKeyReferralCommission(level), decimal.Zero)
	}

	link := referralLink(cmd.botUsername, account.ID)
	return c.Send(textReferral(link, account, stats, commissions), &tele.SendOptions{
		ParseMode: tele.ModeHTML,
		ReplyMarkup: &tele.ReplyMarkup{
			InlineKeyboard: [][]tele.InlineButton{
				{{Text: textShareLink, URL: shareURL(link)}},
			},
		},
	})
}

func (cmd *commands) Help(c tele.Context) error {
	return c.Send(textHelp, tele.ModeHTML)
}

func (cmd *commands) Unknown(c tele.Context) error {
	return c.Send(textUnknown, cmd.openAppMarkup())
}
