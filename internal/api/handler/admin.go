package handler

import (
	"errors"

	"farmingpro/internal/models"
	"farmingpro/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
	"github.com/shopspring/decimal"
)

type groupAdmin struct {
	container *do.Injector
}

type payloadStatus struct {
	Status models.TransactionStatus `json:"status"`
}

type payloadTask struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Reward      decimal.Decimal     `json:"reward"`
	Category    models.TaskCategory `json:"category"`
	URL         string              `json:"url"`
	IsActive    *bool               `json:"is_active"`
}

type payloadActive struct {
	IsActive bool `json:"is_active"`
}

type payloadBoost struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Multiplier  decimal.Decimal `json:"multiplier"`
	Duration    int             `json:"duration"`
	Price       decimal.Decimal `json:"price"`
}

type payloadSetting struct {
	Value string `json:"value"`
}

func (gr *groupAdmin) Stats(c echo.Context) error {
	serviceAdmin, err := do.Invoke[*services.ServiceAdmin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	stats, err := serviceAdmin.Stats(c.Request().Context())
	return httpx.RestAbort(c, stats, translate(err))
}

func (gr *groupAdmin) Accounts(c echo.Context) error {
	serviceAccount, err := do.Invoke[*services.ServiceAccount](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	accounts, err := serviceAccount.ListAccounts(c.Request().Context())
	return httpx.RestAbort(c, accounts, translate(err))
}

func (gr *groupAdmin) PendingWithdrawals(c echo.Context) error {
	serviceAdmin, err := do.Invoke[*services.ServiceAdmin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	transactions, err := serviceAdmin.ListPendingWithdrawals(c.Request().Context())
	return httpx.RestAbort(c, transactions, translate(err))
}

func (gr *groupAdmin) SetTransactionStatus(c echo.Context) error {
	transactionID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid transaction id"), errorx.Validation))
	}

	var payload payloadStatus
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceAdmin, err := do.Invoke[*services.ServiceAdmin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	transaction, err := serviceAdmin.SetWithdrawalStatus(c.Request().Context(), transactionID, payload.Status)
	return httpx.RestAbort(c, transaction, translate(err))
}

func (gr *groupAdmin) CreateTask(c echo.Context) error {
	var payload payloadTask
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceTask, err := do.Invoke[*services.ServiceTask](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	task := &models.Task{
		Title:       payload.Title,
		Description: payload.Description,
		Reward:      payload.Reward,
		Category:    payload.Category,
		URL:         payload.URL,
		IsActive:    payload.IsActive == nil || *payload.IsActive,
	}
	task, err = serviceTask.Create(c.Request().Context(), task)
	return httpx.RestAbort(c, task, translate(err))
}

func (gr *groupAdmin) SetTaskActive(c echo.Context) error {
	taskID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid task id"), errorx.Validation))
	}

	var payload payloadActive
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceTask, err := do.Invoke[*services.ServiceTask](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	task, err := serviceTask.SetActive(c.Request().Context(), taskID, payload.IsActive)
	return httpx.RestAbort(c, task, translate(err))
}

func (gr *groupAdmin) CreateBoost(c echo.Context) error {
	var payload payloadBoost
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceBoost, err := do.Invoke[*services.ServiceBoost](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	boost, err := serviceBoost.Create(c.Request().Context(), &models.Boost{
		Name:        payload.Name,
		Description: payload.Description,
		Multiplier:  payload.Multiplier,
		Duration:    payload.Duration,
		Price:       payload.Price,
		IsActive:    true,
	})
	return httpx.RestAbort(c, boost, translate(err))
}

func (gr *groupAdmin) Settings(c echo.Context) error {
	serviceSetting, err := do.Invoke[*services.ServiceSetting](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	settings, err := serviceSetting.List(c.Request().Context())
	return httpx.RestAbort(c, settings, translate(err))
}

func (gr *groupAdmin) Setting(c echo.Context) error {
	serviceSetting, err := do.Invoke[*services.ServiceSetting](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	setting, err := serviceSetting.Get(c.Request().Context(), c.Param("key"))
	return httpx.RestAbort(c, setting, translate(err))
}

func (gr *groupAdmin) SetSetting(c echo.Context) error {
	var payload payloadSetting
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceSetting, err := do.Invoke[*services.ServiceSetting](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	setting, err := serviceSetting.Set(c.Request().Context(), c.Param("key"), payload.Value)
	return httpx.RestAbort(c, setting, translate(err))
}
