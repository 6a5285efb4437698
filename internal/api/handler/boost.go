package handler

import (
	"errors"

	"farmingpro/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupBoost struct {
	container *do.Injector
}

func (gr *groupBoost) Boosts(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := ResolveValidAccount(ctx, gr.container); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceBoost, err := do.Invoke[*services.ServiceBoost](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	boosts, err := serviceBoost.ListActive(ctx)
	return httpx.RestAbort(c, boosts, translate(err))
}

func (gr *groupBoost) Active(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceBoost, err := do.Invoke[*services.ServiceBoost](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	purchase, err := serviceBoost.Active(ctx, account.ID)
	return httpx.RestAbort(c, purchase, translate(err))
}

func (gr *groupBoost) Purchase(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	boostID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid boost id"), errorx.Validation))
	}

	serviceBoost, err := do.Invoke[*services.ServiceBoost](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	purchase, account, err := serviceBoost.Purchase(ctx, account.ID, boostID)
	if err != nil {
		return httpx.RestAbort(c, nil, translate(err))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"purchase": purchase,
		"account":  account,
	}, nil)
}
