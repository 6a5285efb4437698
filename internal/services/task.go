package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"
	"farmingpro/internal/pkg/caching"

	"github.com/samber/do"
)

type ServiceTask struct {
	container      *do.Injector
	repo           interfaces.Repository
	clock          interfaces.Clock
	cache          caching.Cache
	readonlyCache  caching.ReadOnlyCache
	ledger         *ServiceLedger
	serviceSetting *ServiceSetting
	verifier       interfaces.TaskVerifier
}

func NewServiceTask(container *do.Injector) (*ServiceTask, error) {
	repo, err := do.Invoke[interfaces.Repository](container)
	if err != nil {
		return nil, err
	}

	clock, err := do.Invoke[interfaces.Clock](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	ledger, err := do.Invoke[*ServiceLedger](container)
	if err != nil {
		return nil, err
	}

	serviceSetting, err := do.Invoke[*ServiceSetting](container)
	if err != nil {
		return nil, err
	}

	verifier, err := do.Invoke[interfaces.TaskVerifier](container)
	if err != nil {
		return nil, err
	}

	return &ServiceTask{container, repo, clock, cache, readonlyCache, ledger, serviceSetting, verifier}, nil
}

func (service *ServiceTask) ListActive(ctx context.Context) ([]models.Task, error) {
	callback := func() ([]models.Task, error) {
		return service.repo.ListTasks(ctx, true)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyActiveTasks(), CACHE_TTL_15_MINS, callback)
}

func (service *ServiceTask) ListAll(ctx context.Context) ([]models.Task, error) {
	return service.repo.ListTasks(ctx, false)
}

func (service *ServiceTask) ListCompletions(ctx context.Context, accountID int64) ([]models.TaskCompletion, error) {
	return service.repo.ListTaskCompletions(ctx, accountID)
}

// Complete records the completion and credits the reward, once per account and task.
func (service *ServiceTask) Complete(ctx context.Context, accountID int64, taskID int64) (*models.TaskCompletion, *models.Account, error) {
	task, err := service.repo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, nil, notFound(err, ErrTaskNotFound)
	}
	if !task.IsActive {
		return nil, nil, ErrTaskNotFound
	}

	_, err = service.repo.FindTaskCompletion(ctx, accountID, taskID)
	if err == nil {
		return nil, nil, ErrAlreadyCompleted
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, err
	}

	// the network check stays outside the account lock
	if service.serviceSetting.GetBool(ctx, SETTING_TASK_VERIFICATION_ENABLED, false) {
		joined, err := service.verifier.Verify(ctx, accountID, task)
		if err != nil {
			return nil, nil, err
		}
		if !joined {
			return nil, nil, ErrTaskNotVerified
		}
	}

	var completion *models.TaskCompletion
	account, err := service.ledger.WithAccount(ctx, accountID, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		task, err := tx.FindTaskByID(ctx, taskID)
		if err != nil {
			return notFound(err, ErrTaskNotFound)
		}
		if !task.IsActive {
			return ErrTaskNotFound
		}

		_, err = tx.FindTaskCompletion(ctx, accountID, taskID)
		if err == nil {
			return ErrAlreadyCompleted
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		completion = &models.TaskCompletion{
			AccountID:   accountID,
			TaskID:      taskID,
			CompletedAt: service.clock.Now(),
		}
		if err := tx.InsertTaskCompletion(ctx, completion); err != nil {
			return err
		}

		_, err = service.ledger.Credit(ctx, tx, account, task.Reward, models.TransactionKindTask, fmt.Sprintf("Completed task: %s", task.Title))
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return completion, account, nil
}

func (service *ServiceTask) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" || !task.Reward.IsPositive() {
		return nil, ErrInvalidCatalog
	}
	task.CreatedAt = service.clock.Now()

	err := service.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		return tx.InsertTask(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	caching.Invalidate(ctx, service.cache, DBKeyActiveTasks())
	return task, nil
}

func (service *ServiceTask) SetActive(ctx context.Context, taskID int64, active bool) (*models.Task, error) {
	var task *models.Task
	err := service.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		var err error
		task, err = tx.FindTaskByID(ctx, taskID)
		if err != nil {
			return notFound(err, ErrTaskNotFound)
		}

		task.IsActive = active
		return tx.UpdateTask(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	caching.Invalidate(ctx, service.cache, DBKeyActiveTasks())
	return task, nil
}
