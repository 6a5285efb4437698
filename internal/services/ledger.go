package services

import (
	"context"
	"database/sql"
	"errors"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"

	"github.com/google/uuid"
	"github.com/samber/do"
	"github.com/shopspring/decimal"
)

// ServiceLedger is the only writer of account balances. Each delta is journaled
// as a Transaction in the same write unit.
type ServiceLedger struct {
	container *do.Injector
	repo      interfaces.Repository
	locker    interfaces.Locker
	clock     interfaces.Clock
}

func NewServiceLedger(container *do.Injector) (*ServiceLedger, error) {
	repo, err := do.Invoke[interfaces.Repository](container)
	if err != nil {
		return nil, err
	}

	locker, err := do.Invoke[interfaces.Locker](container)
	if err != nil {
		return nil, err
	}

	clock, err := do.Invoke[interfaces.Clock](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLedger{container, repo, locker, clock}, nil
}

// WithAccount runs fn against the account under the per-account lock, inside
// a single write unit that re-reads the account for update. The account
// returned is the state fn left behind.
func (service *ServiceLedger) WithAccount(ctx context.Context, accountID int64, fn func(ctx context.Context, tx interfaces.Tx, account *models.Account) error) (*models.Account, error) {
	unlock, err := service.locker.Lock(ctx, LockKeyAccount(accountID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result *models.Account
	err = service.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		account, err := tx.LockAccount(ctx, accountID)
		if err != nil {
			return notFound(err, ErrAccountNotFound)
		}

		if err := fn(ctx, tx, account); err != nil {
			return err
		}

		result = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Credit adds a positive amount to the balance.
func (service *ServiceLedger) Credit(ctx context.Context, tx interfaces.Tx, account *models.Account, amount decimal.Decimal, kind models.TransactionKind, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	return service.adjust(ctx, tx, account, amount, kind, models.TransactionStatusCompleted, description)
}

// Debit takes a positive amount off the balance. The journal entry carries the
// negated amount.
func (service *ServiceLedger) Debit(ctx context.Context, tx interfaces.Tx, account *models.Account, amount decimal.Decimal, kind models.TransactionKind, status models.TransactionStatus, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if account.Balance.LessThan(amount) {
		return nil, ErrInsufficientBalance
	}

	return service.adjust(ctx, tx, account, amount.Neg(), kind, status, description)
}

func (service *ServiceLedger) adjust(ctx context.Context, tx interfaces.Tx, account *models.Account, amount decimal.Decimal, kind models.TransactionKind, status models.TransactionStatus, description string) (*models.Transaction, error) {
	now := service.clock.Now()

	account.Balance = account.Balance.Add(amount)
	account.UpdatedAt = now
	err := tx.UpdateAccount(ctx, account)
	if err != nil {
		return nil, notFound(err, ErrAccountNotFound)
	}

	transaction := &models.Transaction{
		Ref:         uuid.New(),
		AccountID:   account.ID,
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = tx.InsertTransaction(ctx, transaction)
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// JournalSum is the signed sum of every journaled amount of the account.
func (service *ServiceLedger) JournalSum(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	transactions, err := service.repo.ListTransactionsByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, transaction := range transactions {
		sum = sum.Add(transaction.Amount)
	}
	return sum, nil
}

func notFound(err error, sentinel *Error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}
