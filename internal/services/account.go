package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"
	"farmingpro/internal/pkg/logger"

	"github.com/samber/do"
	"github.com/shopspring/decimal"
)

const MessageNewReferral = `🎉 Great news! %s has just joined Farming Pro with your referral link.

Keep inviting friends to grow your 3-level referral network.`

type ServiceAccount struct {
	container *do.Injector
	repo      interfaces.Repository
	locker    interfaces.Locker
	clock     interfaces.Clock
	notifier  interfaces.Notifier
	logger    *logger.Logger

	ledger          *ServiceLedger
	serviceReferral *ServiceReferral
	serviceFarming  *ServiceFarming
	serviceBoost    *ServiceBoost
}

func NewServiceAccount(container *do.Injector) (*ServiceAccount, error) {
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

	notifier, err := do.Invoke[interfaces.Notifier](container)
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

	serviceReferral, err := do.Invoke[*ServiceReferral](container)
	if err != nil {
		return nil, err
	}

	serviceFarming, err := do.Invoke[*ServiceFarming](container)
	if err != nil {
		return nil, err
	}

	serviceBoost, err := do.Invoke[*ServiceBoost](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAccount{container, repo, locker, clock, notifier, log, ledger, serviceReferral, serviceFarming, serviceBoost}, nil
}

// CreateAccount is idempotent on the identity. A new account gets its referral
// edges in the same write unit; an unknown referrer is ignored.
func (service *ServiceAccount) CreateAccount(ctx context.Context, identity *models.AccountFromAuth, referrerID *int64) (*models.Account, error) {
	if identity == nil || identity.ID <= 0 {
		return nil, ErrAccountNotFound
	}

	unlock, err := service.locker.Lock(ctx, LockKeyAccount(identity.ID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var account *models.Account
	var referrals []models.Referral
	err = service.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		existing, err := tx.FindAccountByID(ctx, identity.ID)
		if err == nil {
			account = existing
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		now := service.clock.Now()
		account = &models.Account{
			ID:               identity.ID,
			Username:         identity.Username,
			FirstName:        identity.FirstName,
			LastName:         identity.LastName,
			Balance:          decimal.Zero,
			TotalEarned:      decimal.Zero,
			ReferralEarnings: decimal.Zero,
			TotalDeposited:   decimal.Zero,
			TotalWithdrawn:   decimal.Zero,
			FarmingRate:      decimal.NewFromInt(DEFAULT_FARMING_RATE),
			BoostMultiplier:  decimal.NewFromInt(1),
			IsActive:         true,
			CreatedAt:        now,
			UpdatedAt:        now,
			IsNewAccount:     true,
		}

		if referrerID != nil && *referrerID != identity.ID {
			_, err := tx.FindAccountByID(ctx, *referrerID)
			if err == nil {
				id := *referrerID
				account.ReferrerID = &id
			} else if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
		}

		if err := tx.InsertAccount(ctx, account); err != nil {
			return err
		}

		if account.ReferrerID != nil {
			referrals, err = service.serviceReferral.Propagate(ctx, tx, account.ID, *account.ReferrerID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(referrals) > 0 {
		service.notifyReferrer(ctx, referrals[0].ReferrerID, account)
	}

	return account, nil
}

func (service *ServiceAccount) notifyReferrer(ctx context.Context, referrerID int64, account *models.Account) {
	name := account.FirstName
	if account.Username != "" {
		name = "@" + account.Username
	}

	err := service.notifier.Notify(ctx, referrerID, fmt.Sprintf(MessageNewReferral, name))
	if err != nil {
		service.logger.WithError(err).WithField("referrer_id", referrerID).Warn("notify referrer")
	}
}

// FindOrCreate resolves the account behind verified init data, creating it on
// first sight with the referrer from the start parameter.
func (service *ServiceAccount) FindOrCreate(ctx context.Context, identity *models.AccountFromAuth) (*models.Account, error) {
	if identity == nil {
		return nil, ErrAccountNotFound
	}

	existing, err := service.repo.FindAccountByID(ctx, identity.ID)
	if err == nil {
		return service.refreshProfile(ctx, existing, identity)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return service.CreateAccount(ctx, identity, ReferrerFromStartParam(identity.StartParam))
}

func (service *ServiceAccount) refreshProfile(ctx context.Context, account *models.Account, identity *models.AccountFromAuth) (*models.Account, error) {
	if account.Username == identity.Username &&
		account.FirstName == identity.FirstName &&
		account.LastName == identity.LastName {
		return account, nil
	}

	return service.ledger.WithAccount(ctx, account.ID, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		account.Username = identity.Username
		account.FirstName = identity.FirstName
		account.LastName = identity.LastName
		account.UpdatedAt = service.clock.Now()
		return tx.UpdateAccount(ctx, account)
	})
}

func (service *ServiceAccount) FindByID(ctx context.Context, accountID int64) (*models.Account, error) {
	account, err := service.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, notFound(err, ErrAccountNotFound)
	}
	return account, nil
}

func (service *ServiceAccount) Summary(ctx context.Context, accountID int64) (*models.AccountSummary, error) {
	account, err := service.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	activeBoost, err := service.serviceBoost.Active(ctx, accountID)
	if err != nil {
		return nil, err
	}

	stats, err := service.serviceReferral.Stats(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &models.AccountSummary{
		Account:       account,
		ActiveBoost:   activeBoost,
		ReferralStats: stats,
		Farming:       service.serviceFarming.StatusOf(account),
	}, nil
}

func (service *ServiceAccount) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return service.repo.ListAccounts(ctx)
}

// ListTransactions is newest first.
func (service *ServiceAccount) ListTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	return service.repo.ListTransactionsByAccount(ctx, accountID)
}
