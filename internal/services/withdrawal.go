package services

import (
	"context"
	"fmt"
	"strings"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"

	"github.com/samber/do"
	"github.com/shopspring/decimal"
)

var (
	minWithdrawalAmount   = decimal.NewFromInt(MIN_WITHDRAWAL_AMOUNT)
	minFirstDepositAmount = decimal.NewFromInt(MIN_FIRST_DEPOSIT_AMOUNT)
	depositPerWithdrawal  = decimal.NewFromInt(DEPOSIT_PER_WITHDRAWAL)
)

type ServiceWithdrawal struct {
	container      *do.Injector
	repo           interfaces.Repository
	ledger         *ServiceLedger
	serviceSetting *ServiceSetting
}

func NewServiceWithdrawal(container *do.Injector) (*ServiceWithdrawal, error) {
	repo, err := do.Invoke[interfaces.Repository](container)
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

	return &ServiceWithdrawal{container, repo, ledger, serviceSetting}, nil
}

// ParseAmount accepts a positive decimal string with at most two fraction digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// CanWithdraw applies the withdrawal rules in order and reports the first one
// that fails. It has no side effects.
func CanWithdraw(account *models.Account, amount decimal.Decimal) *models.WithdrawalCheck {
	if amount.LessThan(minWithdrawalAmount) {
		return &models.WithdrawalCheck{Reason: fmt.Sprintf("Minimum withdrawal is $%d", MIN_WITHDRAWAL_AMOUNT)}
	}

	if !account.HasFirstDeposit {
		return &models.WithdrawalCheck{Reason: fmt.Sprintf("You must make a first deposit of $%d before withdrawing", MIN_FIRST_DEPOSIT_AMOUNT)}
	}

	required := minFirstDepositAmount.Add(depositPerWithdrawal.Mul(account.TotalWithdrawn))
	if account.TotalDeposited.LessThan(required) {
		return &models.WithdrawalCheck{Reason: fmt.Sprintf("You need to deposit $%s more to withdraw", required.Sub(account.TotalDeposited).StringFixed(2))}
	}

	if account.Balance.LessThan(amount) {
		return &models.WithdrawalCheck{Reason: ErrInsufficientBalance.Reason}
	}

	return &models.WithdrawalCheck{CanWithdraw: true}
}

func (service *ServiceWithdrawal) Check(ctx context.Context, accountID int64, amount decimal.Decimal) (*models.WithdrawalCheck, error) {
	account, err := service.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, notFound(err, ErrAccountNotFound)
	}

	return CanWithdraw(account, amount), nil
}

// Withdraw debits the amount into a pending withdrawal for an admin to settle.
func (service *ServiceWithdrawal) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (*models.Transaction, *models.Account, error) {
	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}
	if !service.serviceSetting.GetBool(ctx, SETTING_WITHDRAWAL_ENABLED, true) {
		return nil, nil, ErrWithdrawalsDisabled
	}

	var transaction *models.Transaction
	account, err := service.ledger.WithAccount(ctx, accountID, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		check := CanWithdraw(account, amount)
		if !check.CanWithdraw {
			return withReason(ErrWithdrawalNotAllowed, check.Reason)
		}

		account.TotalWithdrawn = account.TotalWithdrawn.Add(amount)

		var err error
		transaction, err = service.ledger.Debit(ctx, tx, account, amount, models.TransactionKindWithdrawal, models.TransactionStatusPending, "Withdrawal request")
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return transaction, account, nil
}

// Deposit credits the amount. The first deposit of at least the minimum
// unlocks withdrawals for good.
func (service *ServiceWithdrawal) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (*models.Transaction, *models.Account, error) {
	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}
	if !service.serviceSetting.GetBool(ctx, SETTING_DEPOSIT_ENABLED, true) {
		return nil, nil, ErrDepositsDisabled
	}

	var transaction *models.Transaction
	account, err := service.ledger.WithAccount(ctx, accountID, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		description := "Deposit to wallet"
		if !account.HasFirstDeposit && amount.GreaterThanOrEqual(minFirstDepositAmount) {
			account.HasFirstDeposit = true
			description = "First deposit - Withdrawal enabled"
		}
		account.TotalDeposited = account.TotalDeposited.Add(amount)

		var err error
		transaction, err = service.ledger.Credit(ctx, tx, account, amount, models.TransactionKindDeposit, description)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return transaction, account, nil
}
