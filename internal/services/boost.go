package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"
	"farmingpro/internal/pkg/caching"

	"github.com/samber/do"
)

type ServiceBoost struct {
	container     *do.Injector
	repo          interfaces.Repository
	clock         interfaces.Clock
	cache         caching.Cache
	readonlyCache caching.ReadOnlyCache
	ledger        *ServiceLedger
}

func NewServiceBoost(container *do.Injector) (*ServiceBoost, error) {
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

	return &ServiceBoost{container, repo, clock, cache, readonlyCache, ledger}, nil
}

func (service *ServiceBoost) ListActive(ctx context.Context) ([]models.Boost, error) {
	callback := func() ([]models.Boost, error) {
		return service.repo.ListBoosts(ctx, true)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyActiveBoosts(), CACHE_TTL_15_MINS, callback)
}

// Active is the latest purchase that has not expired yet, nil when there is none.
func (service *ServiceBoost) Active(ctx context.Context, accountID int64) (*models.BoostPurchase, error) {
	purchase, err := service.repo.FindActiveBoostPurchase(ctx, accountID, service.clock.Now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// Purchase debits the price and replaces whatever boost the account had.
func (service *ServiceBoost) Purchase(ctx context.Context, accountID int64, boostID int64) (*models.BoostPurchase, *models.Account, error) {
	var purchase *models.BoostPurchase
	account, err := service.ledger.WithAccount(ctx, accountID, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		boost, err := tx.FindBoostByID(ctx, boostID)
		if err != nil {
			return notFound(err, ErrBoostNotFound)
		}
		if !boost.IsActive {
			return ErrBoostNotFound
		}

		if account.Balance.LessThan(boost.Price) {
			return ErrInsufficientBalance
		}

		now := service.clock.Now()
		expiresAt := now.Add(time.Duration(boost.Duration) * time.Hour)
		account.BoostMultiplier = boost.Multiplier
		account.BoostEndTime = &expiresAt

		_, err = service.ledger.Debit(ctx, tx, account, boost.Price, models.TransactionKindBoost, models.TransactionStatusCompleted, fmt.Sprintf("Purchased %s", boost.Name))
		if err != nil {
			return err
		}

		purchase = &models.BoostPurchase{
			AccountID:   account.ID,
			BoostID:     boost.ID,
			PurchasedAt: now,
			ExpiresAt:   expiresAt,
		}
		if err := tx.InsertBoostPurchase(ctx, purchase); err != nil {
			return err
		}
		purchase.Boost = boost
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return purchase, account, nil
}

func (service *ServiceBoost) Create(ctx context.Context, boost *models.Boost) (*models.Boost, error) {
	boost.Name = strings.TrimSpace(boost.Name)
	if boost.Name == "" || boost.Duration <= 0 || !boost.Multiplier.IsPositive() || !boost.Price.IsPositive() {
		return nil, ErrInvalidCatalog
	}

	err := service.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		return tx.InsertBoost(ctx, boost)
	})
	if err != nil {
		return nil, err
	}

	caching.Invalidate(ctx, service.cache, DBKeyActiveBoosts())
	return boost, nil
}
