package handler

import (
	"farmingpro/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
	"github.com/shopspring/decimal"
)

type groupWallet struct {
	container *do.Injector
}

type payloadAmount struct {
	Amount decimal.Decimal `json:"amount"`
}

func bindAmount(c echo.Context) (decimal.Decimal, error) {
	var payload payloadAmount
	if err := c.Bind(&payload); err != nil {
		return decimal.Zero, errorx.Wrap(err, errorx.Invalid)
	}

	amount, err := services.ParseAmount(payload.Amount.String())
	if err != nil {
		return decimal.Zero, translate(err)
	}
	return amount, nil
}

func (gr *groupWallet) Deposit(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	amount, err := bindAmount(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceWithdrawal, err := do.Invoke[*services.ServiceWithdrawal](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	transaction, account, err := serviceWithdrawal.Deposit(ctx, account.ID, amount)
	if err != nil {
		return httpx.RestAbort(c, nil, translate(err))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"transaction": transaction,
		"account":     account,
	}, nil)
}

func (gr *groupWallet) CheckWithdraw(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	amount, err := services.ParseAmount(c.QueryParam("amount"))
	if err != nil {
		return httpx.RestAbort(c, nil, translate(err))
	}

	serviceWithdrawal, err := do.Invoke[*services.ServiceWithdrawal](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	check, err := serviceWithdrawal.Check(ctx, account.ID, amount)
	return httpx.RestAbort(c, check, translate(err))
}

func (gr *groupWallet) Withdraw(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	amount, err := bindAmount(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceWithdrawal, err := do.Invoke[*services.ServiceWithdrawal](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	transaction, account, err := serviceWithdrawal.Withdraw(ctx, account.ID, amount)
	if err != nil {
		return httpx.RestAbort(c, nil, translate(err))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"transaction": transaction,
		"account":     account,
	}, nil)
}
