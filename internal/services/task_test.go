package services

import (
	"errors"
	"testing"

	"farmingpro/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCompleteOnce(t *testing.T) {
	f := newFixture(t)
	tasks := mustInvoke[*ServiceTask](t, f)
	f.account(t, 1, nil)
	youtube := f.taskByTitle(t, "Subscribe YouTube")

	completion, account, err := tasks.Complete(f.ctx, 1, youtube.ID)
	require.NoError(t, err)
	assert.Equal(t, youtube.ID, completion.TaskID)
	requireDecimal(t, "800", account.Balance)

	_, _, err = tasks.Complete(f.ctx, 1, youtube.ID)
	require.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, KindInvalidState, KindOf(err))

	completions, err := tasks.ListCompletions(f.ctx, 1)
	require.NoError(t, err)
	require.Len(t, completions, 1)

	transactions, err := f.store.ListTransactionsByAccount(f.ctx, 1)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.TransactionKindTask, transactions[0].Kind)
	assert.Equal(t, "Completed task: Subscribe YouTube", transactions[0].Description)
	f.requireJournalBalanced(t, 1)
}

func TestTaskCompleteMissingOrInactive(t *testing.T) {
	f := newFixture(t)
	tasks := mustInvoke[*ServiceTask](t, f)
	f.account(t, 1, nil)

	_, _, err := tasks.Complete(f.ctx, 1, 999)
	require.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))

	instagram := f.taskByTitle(t, "Follow Instagram")
	_, err = tasks.SetActive(f.ctx, instagram.ID, false)
	require.NoError(t, err)

	_, _, err = tasks.Complete(f.ctx, 1, instagram.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)

	active, err := tasks.ListActive(f.ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	_, _, err = tasks.Complete(f.ctx, 42, f.taskByTitle(t, "Subscribe YouTube").ID)
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestTaskVerification(t *testing.T) {
	f := newFixture(t)
	tasks := mustInvoke[*ServiceTask](t, f)
	settings := mustInvoke[*ServiceSetting](t, f)
	f.account(t, 1, nil)
	telegram := f.taskByTitle(t, "Join Telegram Channel")

	// disabled by default
	_, _, err := tasks.Complete(f.ctx, 1, telegram.ID)
	require.NoError(t, err)
	assert.Zero(t, f.verifier.calls)

	_, err = settings.Set(f.ctx, SETTING_TASK_VERIFICATION_ENABLED, "true")
	require.NoError(t, err)
	f.account(t, 2, nil)

	f.verifier.joined = false
	_, _, err = tasks.Complete(f.ctx, 2, telegram.ID)
	require.ErrorIs(t, err, ErrTaskNotVerified)
	assert.Equal(t, KindPolicyViolation, KindOf(err))

	f.verifier.joined = true
	f.verifier.err = errors.New("telegram down")
	_, _, err = tasks.Complete(f.ctx, 2, telegram.ID)
	require.Error(t, err)

	f.verifier.err = nil
	_, account, err := tasks.Complete(f.ctx, 2, telegram.ID)
	require.NoError(t, err)
	requireDecimal(t, "500", account.Balance)
	assert.Equal(t, 3, f.verifier.calls)
}

func TestTaskCreate(t *testing.T) {
	f := newFixture(t)
	tasks := mustInvoke[*ServiceTask](t, f)

	_, err := tasks.Create(f.ctx, &models.Task{Title: " ", Reward: decimal.NewFromInt(10)})
	require.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = tasks.Create(f.ctx, &models.Task{Title: "Follow X", Reward: decimal.Zero})
	require.ErrorIs(t, err, ErrInvalidCatalog)

	task, err := tasks.Create(f.ctx, &models.Task{
		Title:    "Follow X",
		Reward:   decimal.NewFromInt(250),
		Category: models.TaskCategoryTwitter,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, task.ID)

	all, err := tasks.ListAll(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = tasks.SetActive(f.ctx, 12345, true)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskCreateInactive(t *testing.T) {
	f := newFixture(t)
	tasks := mustInvoke[*ServiceTask](t, f)

	task, err := tasks.Create(f.ctx, &models.Task{
		Title:    "Hidden task",
		Reward:   decimal.NewFromInt(50),
		Category: models.TaskCategoryTwitter,
		IsActive: false,
	})
	require.NoError(t, err)
	assert.False(t, task.IsActive)

	active, err := tasks.ListActive(f.ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)
	for _, candidate := range active {
		assert.NotEqual(t, task.ID, candidate.ID)
	}

	account := f.account(t, 1, nil)
	_, _, err = tasks.Complete(f.ctx, account.ID, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}
