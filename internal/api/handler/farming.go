package handler

import (
	"farmingpro/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupFarming struct {
	container *do.Injector
}

func (gr *groupFarming) Status(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceFarming, err := do.Invoke[*services.ServiceFarming](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, serviceFarming.StatusOf(account), nil)
}

func (gr *groupFarming) Start(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceFarming, err := do.Invoke[*services.ServiceFarming](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	account, err = serviceFarming.Start(ctx, account.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, translate(err))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"account": account,
		"farming": serviceFarming.StatusOf(account),
	}, nil)
}

func (gr *groupFarming) Claim(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceFarming, err := do.Invoke[*services.ServiceFarming](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	before := account.Balance
	account, err = serviceFarming.Claim(ctx, account.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, translate(err))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"account": account,
		"reward":  account.Balance.Sub(before),
	}, nil)
}
