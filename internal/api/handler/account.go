package handler

import (
	"farmingpro/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAccount struct {
	container *do.Injector
}

func (gr *groupAccount) Me(c echo.Context) error {
	ctx := c.Request().Context()

	// registers the account on first sight
	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAccount, err := do.Invoke[*services.ServiceAccount](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	summary, err := serviceAccount.Summary(ctx, account.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, translate(err))
	}
	summary.Account.IsNewAccount = account.IsNewAccount

	return httpx.RestAbort(c, summary, nil)
}

func (gr *groupAccount) Transactions(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAccount, err := do.Invoke[*services.ServiceAccount](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	transactions, err := serviceAccount.ListTransactions(ctx, account.ID)
	return httpx.RestAbort(c, transactions, translate(err))
}
