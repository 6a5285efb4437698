package services

import (
	"testing"

	"farmingpro/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanWithdraw(t *testing.T) {
	account := func(balance, deposited, withdrawn string, firstDeposit bool) *models.Account {
		return &models.Account{
			Balance:         decimal.RequireFromString(balance),
			TotalDeposited:  decimal.RequireFromString(deposited),
			TotalWithdrawn:  decimal.RequireFromString(withdrawn),
			HasFirstDeposit: firstDeposit,
		}
	}

	cases := []struct {
		name    string
		account *models.Account
		amount  string
		allowed bool
		reason  string
	}{
		{"below minimum", account("100", "10", "0", true), "11.99", false, "Minimum withdrawal is $12"},
		{"no first deposit", account("100", "0", "0", false), "12", false, "You must make a first deposit of $5 before withdrawing"},
		{"deposit ratio", account("100", "10", "2", true), "12", false, "You need to deposit $1.00 more to withdraw"},
		{"insufficient balance", account("11", "10", "0", true), "12", false, "Insufficient balance"},
		{"minimum checked before deposit", account("0", "0", "0", false), "5", false, "Minimum withdrawal is $12"},
		{"allowed", account("12", "5", "0", true), "12", true, ""},
		{"allowed after withdrawals", account("50", "41", "12", true), "20", true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			check := CanWithdraw(tc.account, decimal.RequireFromString(tc.amount))
			assert.Equal(t, tc.allowed, check.CanWithdraw)
			assert.Equal(t, tc.reason, check.Reason)
		})
	}
}

func TestParseAmount(t *testing.T) {
	for _, s := range []string{"12", "12.5", " 12.50 ", "0.01"} {
		_, err := ParseAmount(s)
		assert.NoError(t, err, s)
	}

	for _, s := range []string{"", "abc", "0", "-5", "1.234"} {
		_, err := ParseAmount(s)
		assert.ErrorIs(t, err, ErrInvalidAmount, s)
	}
}

func TestWithdrawFlow(t *testing.T) {
	f := newFixture(t)
	withdrawals := mustInvoke[*ServiceWithdrawal](t, f)
	f.account(t, 1, nil)

	_, _, err := withdrawals.Withdraw(f.ctx, 1, decimal.NewFromInt(12))
	require.ErrorIs(t, err, ErrWithdrawalNotAllowed)
	assert.Equal(t, "You must make a first deposit of $5 before withdrawing", err.Error())

	f.deposit(t, 1, "100")

	transaction, account, err := withdrawals.Withdraw(f.ctx, 1, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusPending, transaction.Status)
	assert.Equal(t, "Withdrawal request", transaction.Description)
	requireDecimal(t, "-20", transaction.Amount)
	requireDecimal(t, "80", account.Balance)
	requireDecimal(t, "20", account.TotalWithdrawn)

	_, account, err = withdrawals.Withdraw(f.ctx, 1, decimal.NewFromInt(12))
	require.NoError(t, err)
	requireDecimal(t, "32", account.TotalWithdrawn)

	// 5 + 3 * 32 = 101 > 100
	check, err := withdrawals.Check(f.ctx, 1, decimal.NewFromInt(12))
	require.NoError(t, err)
	assert.False(t, check.CanWithdraw)
	assert.Equal(t, "You need to deposit $1.00 more to withdraw", check.Reason)

	_, _, err = withdrawals.Withdraw(f.ctx, 1, decimal.NewFromInt(12))
	require.ErrorIs(t, err, ErrWithdrawalNotAllowed)
	assert.Equal(t, KindPolicyViolation, KindOf(err))

	f.requireJournalBalanced(t, 1)
}

func TestDeposit(t *testing.T) {
	f := newFixture(t)
	withdrawals := mustInvoke[*ServiceWithdrawal](t, f)
	f.account(t, 1, nil)

	transaction, account, err := withdrawals.Deposit(f.ctx, 1, decimal.RequireFromString("4.99"))
	require.NoError(t, err)
	assert.False(t, account.HasFirstDeposit)
	assert.Equal(t, "Deposit to wallet", transaction.Description)

	transaction, account, err = withdrawals.Deposit(f.ctx, 1, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, account.HasFirstDeposit)
	assert.Equal(t, "First deposit - Withdrawal enabled", transaction.Description)
	requireDecimal(t, "9.99", account.TotalDeposited)
	requireDecimal(t, "9.99", account.Balance)

	transaction, _, err = withdrawals.Deposit(f.ctx, 1, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.Equal(t, "Deposit to wallet", transaction.Description)

	_, _, err = withdrawals.Deposit(f.ctx, 1, decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = withdrawals.Deposit(f.ctx, 404, decimal.NewFromInt(5))
	require.ErrorIs(t, err, ErrAccountNotFound)

	f.requireJournalBalanced(t, 1)
}

func TestWalletSettings(t *testing.T) {
	f := newFixture(t)
	withdrawals := mustInvoke[*ServiceWithdrawal](t, f)
	settings := mustInvoke[*ServiceSetting](t, f)
	f.account(t, 1, nil)
	f.deposit(t, 1, "100")

	_, err := settings.Set(f.ctx, SETTING_DEPOSIT_ENABLED, "false")
	require.NoError(t, err)
	_, _, err = withdrawals.Deposit(f.ctx, 1, decimal.NewFromInt(5))
	require.ErrorIs(t, err, ErrDepositsDisabled)

	_, err = settings.Set(f.ctx, SETTING_WITHDRAWAL_ENABLED, "false")
	require.NoError(t, err)
	_, _, err = withdrawals.Withdraw(f.ctx, 1, decimal.NewFromInt(12))
	require.ErrorIs(t, err, ErrWithdrawalsDisabled)
}
