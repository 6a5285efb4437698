package services

import (
	"context"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"
	"farmingpro/internal/pkg/logger"

	"github.com/samber/do"
)

type ServiceAdmin struct {
	container *do.Injector
	repo      interfaces.Repository
	clock     interfaces.Clock
	logger    *logger.Logger
	ledger    *ServiceLedger
}

func NewServiceAdmin(container *do.Injector) (*ServiceAdmin, error) {
	repo, err := do.Invoke[interfaces.Repository](container)
	if err != nil {
		return nil, err
	}

	clock, err := do.Invoke[interfaces.Clock](container)
	if err != nil {
		return nil, err
	}

	log, err := do.Invoke[*logger.Logger](container)
	if err != nil {
		return nil, err
	}

	ledger, err := do.Invoke[*ServiceLedger](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAdmin{container, repo, clock, log, ledger}, nil
}

func (service *ServiceAdmin) Stats(ctx context.Context) (*models.Stats, error) {
	stats, err := service.repo.AccountTotals(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := service.repo.ListTransactionsByKindStatus(ctx, models.TransactionKindWithdrawal, models.TransactionStatusPending)
	if err != nil {
		return nil, err
	}
	stats.PendingWithdrawals = len(pending)
	stats.TotalUsdt = stats.TotalUsdt.Round(2)

	return stats, nil
}

func (service *ServiceAdmin) ListPendingWithdrawals(ctx context.Context) ([]models.Transaction, error) {
	return service.repo.ListTransactionsByKindStatus(ctx, models.TransactionKindWithdrawal, models.TransactionStatusPending)
}

// SetWithdrawalStatus settles a pending withdrawal. A failed one is refunded
// and taken back out of the withdrawn total.
func (service *ServiceAdmin) SetWithdrawalStatus(ctx context.Context, transactionID int64, status models.TransactionStatus) (*models.Transaction, error) {
	if status != models.TransactionStatusCompleted && status != models.TransactionStatusFailed {
		return nil, ErrInvalidStatus
	}

	transaction, err := service.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, notFound(err, ErrTransactionNotFound)
	}
	if transaction.Kind != models.TransactionKindWithdrawal {
		return nil, ErrNotAWithdrawal
	}

	_, err = service.ledger.WithAccount(ctx, transaction.AccountID, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		current, err := tx.FindTransactionByID(ctx, transactionID)
		if err != nil {
			return notFound(err, ErrTransactionNotFound)
		}
		if current.Status != models.TransactionStatusPending {
			return ErrTransactionNotPending
		}

		current.Status = status
		current.UpdatedAt = service.clock.Now()
		if err := tx.UpdateTransaction(ctx, current); err != nil {
			return err
		}
		transaction = current

		if status != models.TransactionStatusFailed {
			return nil
		}

		refund := current.Amount.Abs()
		account.TotalWithdrawn = account.TotalWithdrawn.Sub(refund)
		_, err = service.ledger.Credit(ctx, tx, account, refund, models.TransactionKindWithdrawal, "Withdrawal refund")
		return err
	})
	if err != nil {
		return nil, err
	}

	service.logger.WithField("transaction_id", transactionID).WithField("status", status).Info("withdrawal settled")
	return transaction, nil
}

// ExpireBoosts resets the multiplier of every account whose boost ran out.
func (service *ServiceAdmin) ExpireBoosts(ctx context.Context) (int, error) {
	var n int
	err := service.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		var err error
		n, err = tx.ResetExpiredBoosts(ctx, service.clock.Now())
		return err
	})
	return n, err
}
