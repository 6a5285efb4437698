package handler

import (
	"errors"

	"farmingpro/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupTask struct {
	container *do.Injector
}

func (gr *groupTask) Tasks(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := ResolveValidAccount(ctx, gr.container); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceTask, err := do.Invoke[*services.ServiceTask](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tasks, err := serviceTask.ListActive(ctx)
	return httpx.RestAbort(c, tasks, translate(err))
}

func (gr *groupTask) Completed(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceTask, err := do.Invoke[*services.ServiceTask](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	completions, err := serviceTask.ListCompletions(ctx, account.ID)
	return httpx.RestAbort(c, completions, translate(err))
}

func (gr *groupTask) Complete(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	taskID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid task id"), errorx.Validation))
	}

	serviceTask, err := do.Invoke[*services.ServiceTask](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	completion, account, err := serviceTask.Complete(ctx, account.ID, taskID)
	if err != nil {
		return httpx.RestAbort(c, nil, translate(err))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"completion": completion,
		"account":    account,
	}, nil)
}
