package services

import (
	"context"
	"errors"
	"testing"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLedgerCreditDebit(t *testing.T) {
	f := newFixture(t)
	ledger := mustInvoke[*ServiceLedger](t, f)
	f.account(t, 1, nil)

	account, err := ledger.WithAccount(f.ctx, 1, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		if _, err := ledger.Credit(ctx, tx, account, decimal.NewFromInt(30), models.TransactionKindDeposit, "credit"); err != nil {
			return err
		}
		_, err := ledger.Debit(ctx, tx, account, decimal.NewFromInt(10), models.TransactionKindBoost, models.TransactionStatusCompleted, "debit")
		return err
	})
	require.NoError(t, err)
	requireDecimal(t, "20", account.Balance)

	transactions, err := f.store.ListTransactionsByAccount(f.ctx, 1)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	requireDecimal(t, "-10", transactions[0].Amount)
	requireDecimal(t, "30", transactions[1].Amount)
	assert.NotEqual(t, transactions[0].Ref, transactions[1].Ref)
	f.requireJournalBalanced(t, 1)
}

func TestLedgerRejects(t *testing.T) {
	f := newFixture(t)
	ledger := mustInvoke[*ServiceLedger](t, f)
	f.account(t, 1, nil)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		_, err := ledger.WithAccount(f.ctx, 1, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
			_, err := ledger.Credit(ctx, tx, account, amount, models.TransactionKindDeposit, "")
			return err
		})
		require.ErrorIs(t, err, ErrInvalidAmount)
	}

	_, err := ledger.WithAccount(f.ctx, 1, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		_, err := ledger.Debit(ctx, tx, account, decimal.NewFromInt(1), models.TransactionKindBoost, models.TransactionStatusCompleted, "")
		return err
	})
	require.ErrorIs(t, err, ErrInsufficientBalance)

	_, err = ledger.WithAccount(f.ctx, 404, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		return nil
	})
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLedgerRollsBackOnError(t *testing.T) {
	f := newFixture(t)
	ledger := mustInvoke[*ServiceLedger](t, f)
	f.account(t, 1, nil)
	boom := errors.New("boom")

	_, err := ledger.WithAccount(f.ctx, 1, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		if _, err := ledger.Credit(ctx, tx, account, decimal.NewFromInt(30), models.TransactionKindDeposit, "credit"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	account, err := f.store.FindAccountByID(f.ctx, 1)
	require.NoError(t, err)
	requireDecimal(t, "0", account.Balance)
	f.requireJournalBalanced(t, 1)
}

func TestLedgerInvariantAcrossFlows(t *testing.T) {
	f := newFixture(t)
	f.account(t, 1, nil)
	f.deposit(t, 1, "300")

	_, _, err := mustInvoke[*ServiceBoost](t, f).Purchase(f.ctx, 1, f.boostByName(t, "Basic Boost").ID)
	require.NoError(t, err)
	_, _, err = mustInvoke[*ServiceTask](t, f).Complete(f.ctx, 1, f.taskByTitle(t, "Follow Instagram").ID)
	require.NoError(t, err)

	farming := mustInvoke[*ServiceFarming](t, f)
	_, err = farming.Start(f.ctx, 1)
	require.NoError(t, err)
	f.clock.Advance(FarmingSessionLength)
	_, err = farming.Claim(f.ctx, 1)
	require.NoError(t, err)

	transaction, _, err := mustInvoke[*ServiceWithdrawal](t, f).Withdraw(f.ctx, 1, decimal.NewFromInt(50))
	require.NoError(t, err)
	_, err = mustInvoke[*ServiceAdmin](t, f).SetWithdrawalStatus(f.ctx, transaction.ID, models.TransactionStatusFailed)
	require.NoError(t, err)

	account, err := f.store.FindAccountByID(f.ctx, 1)
	require.NoError(t, err)
	// 300 - 100 + 300 + 960
	requireDecimal(t, "1460", account.Balance)
	f.requireJournalBalanced(t, 1)
}

func TestLedgerSerializesConcurrentMutations(t *testing.T) {
	f := newFixture(t)
	f.account(t, 1, nil)
	f.deposit(t, 1, "5000")

	withdrawals := mustInvoke[*ServiceWithdrawal](t, f)
	boosts := mustInvoke[*ServiceBoost](t, f)
	basic := f.boostByName(t, "Basic Boost")

	const deposits, purchases = 100, 40
	var group errgroup.Group
	for i := 0; i < deposits; i++ {
		group.Go(func() error {
			_, _, err := withdrawals.Deposit(f.ctx, 1, decimal.NewFromInt(5))
			return err
		})
	}
	for i := 0; i < purchases; i++ {
		group.Go(func() error {
			_, _, err := boosts.Purchase(f.ctx, 1, basic.ID)
			return err
		})
	}
	require.NoError(t, group.Wait())

	account, err := f.store.FindAccountByID(f.ctx, 1)
	require.NoError(t, err)
	// 5000 + 100*5 - 40*100
	requireDecimal(t, "1500", account.Balance)
	requireDecimal(t, "5500", account.TotalDeposited)

	transactions, err := f.store.ListTransactionsByAccount(f.ctx, 1)
	require.NoError(t, err)
	assert.Len(t, transactions, 1+deposits+purchases)
	f.requireJournalBalanced(t, 1)
}
