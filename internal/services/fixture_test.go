package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"farmingpro/internal/datastore"
	"farmingpro/internal/datastore/memstore"
	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"
	"farmingpro/internal/pkg/caching"
	"farmingpro/internal/pkg/clock"
	"farmingpro/internal/pkg/limiter"
	"farmingpro/internal/pkg/locker"
	"farmingpro/internal/pkg/logger"

	"github.com/samber/do"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (n *fakeNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{chatID, text})
	return nil
}

func (n *fakeNotifier) messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}

type fakeVerifier struct {
	joined bool
	err    error
	calls  int
}

func (v *fakeVerifier) Verify(ctx context.Context, accountID int64, task *models.Task) (bool, error) {
	v.calls++
	return v.joined, v.err
}

type fixture struct {
	ctx      context.Context
	injector *do.Injector
	store    *memstore.Store
	clock    *clock.Fake
	notifier *fakeNotifier
	verifier *fakeVerifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ctx:      context.Background(),
		injector: do.New(),
		store:    memstore.New(),
		clock:    clock.NewFake(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)),
		notifier: &fakeNotifier{},
		verifier: &fakeVerifier{joined: true},
	}

	do.ProvideNamedValue(f.injector, "envs", map[string]string{
		"BOT_TOKEN":                 "123456:test-token",
		"JWT_SECRET":                "test-secret",
		"INIT_DATA_SKIP_VALIDATION": "true",
	})
	do.ProvideValue[interfaces.Repository](f.injector, f.store)
	do.ProvideValue[interfaces.Locker](f.injector, locker.NewLocal())
	do.ProvideValue[interfaces.Clock](f.injector, f.clock)
	do.ProvideValue[interfaces.Limiter](f.injector, limiter.Unlimited{})
	do.ProvideValue[caching.Cache](f.injector, caching.NopCache{})
	do.ProvideValue[caching.ReadOnlyCache](f.injector, caching.NopCache{})
	do.ProvideValue(f.injector, logger.Discard())
	Provide(f.injector)
	do.OverrideValue[interfaces.Notifier](f.injector, f.notifier)
	do.OverrideValue[interfaces.TaskVerifier](f.injector, f.verifier)

	require.NoError(t, datastore.Seed(f.ctx, f.store, f.clock.Now()))
	return f
}

func mustInvoke[T any](t *testing.T, f *fixture) T {
	t.Helper()
	service, err := do.Invoke[T](f.injector)
	require.NoError(t, err)
	return service
}

func (f *fixture) account(t *testing.T, id int64, referrerID *int64) *models.Account {
	t.Helper()
	account, err := mustInvoke[*ServiceAccount](t, f).CreateAccount(f.ctx, &models.AccountFromAuth{
		ID:        id,
		Username:  "user",
		FirstName: "User",
	}, referrerID)
	require.NoError(t, err)
	return account
}

func (f *fixture) deposit(t *testing.T, accountID int64, amount string) *models.Account {
	t.Helper()
	_, account, err := mustInvoke[*ServiceWithdrawal](t, f).Deposit(f.ctx, accountID, decimal.RequireFromString(amount))
	require.NoError(t, err)
	return account
}

func (f *fixture) boostByName(t *testing.T, name string) models.Boost {
	t.Helper()
	boosts, err := f.store.ListBoosts(f.ctx, false)
	require.NoError(t, err)
	for _, boost := range boosts {
		if boost.Name == name {
			return boost
		}
	}
	t.Fatalf("boost %q not seeded", name)
	return models.Boost{}
}

func (f *fixture) taskByTitle(t *testing.T, title string) models.Task {
	t.Helper()
	tasks, err := f.store.ListTasks(f.ctx, false)
	require.NoError(t, err)
	for _, task := range tasks {
		if task.Title == title {
			return task
		}
	}
	t.Fatalf("task %q not seeded", title)
	return models.Task{}
}

// requireJournalBalanced checks balance against the signed sum of the journal.
func (f *fixture) requireJournalBalanced(t *testing.T, accountID int64) {
	t.Helper()
	account, err := f.store.FindAccountByID(f.ctx, accountID)
	require.NoError(t, err)

	sum, err := mustInvoke[*ServiceLedger](t, f).JournalSum(f.ctx, accountID)
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(sum), "balance %s, journal %s", account.Balance, sum)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}
