package services

import (
	"context"
	"fmt"
	"time"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"

	"github.com/samber/do"
	"github.com/shopspring/decimal"
)

type ServiceFarming struct {
	container *do.Injector
	repo      interfaces.Repository
	clock     interfaces.Clock
	ledger    *ServiceLedger
}

func NewServiceFarming(container *do.Injector) (*ServiceFarming, error) {
	repo, err := do.Invoke[interfaces.Repository](container)
	if err != nil {
		return nil, err
	}

	clock, err := do.Invoke[interfaces.Clock](container)
	if err != nil {
		return nil, err
	}

	ledger, err := do.Invoke[*ServiceLedger](container)
	if err != nil {
		return nil, err
	}

	return &ServiceFarming{container, repo, clock, ledger}, nil
}

var millisPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// FarmingReward is hours(end - start) * rate * multiplier, rounded to cents.
// The hour division is applied last.
func FarmingReward(start, end time.Time, rate, multiplier decimal.Decimal) decimal.Decimal {
	millis := decimal.NewFromInt(int64(end.Sub(start) / time.Millisecond))
	return millis.Mul(rate).Mul(multiplier).DivRound(millisPerHour, 2)
}

func farmingHours(start, end time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(end.Sub(start) / time.Millisecond)).DivRound(millisPerHour, 4)
}

func (service *ServiceFarming) Start(ctx context.Context, accountID int64) (*models.Account, error) {
	return service.ledger.WithAccount(ctx, accountID, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		// an expired session still has to be claimed first
		if account.FarmingStartTime != nil || account.FarmingEndTime != nil {
			return ErrAlreadyRunning
		}

		now := service.clock.Now()
		end := now.Add(FarmingSessionLength)
		account.FarmingStartTime = &now
		account.FarmingEndTime = &end
		account.UpdatedAt = now

		return tx.UpdateAccount(ctx, account)
	})
}

func (service *ServiceFarming) Claim(ctx context.Context, accountID int64) (*models.Account, error) {
	return service.ledger.WithAccount(ctx, accountID, func(ctx context.Context, tx interfaces.Tx, account *models.Account) error {
		if !account.HasFarmingSession() {
			return ErrNoActiveSession
		}

		now := service.clock.Now()
		if now.Before(*account.FarmingEndTime) {
			return ErrNotYetComplete
		}

		start, end := *account.FarmingStartTime, *account.FarmingEndTime
		multiplier := account.EffectiveMultiplier(now)
		reward := FarmingReward(start, end, account.FarmingRate, multiplier)

		account.TotalEarned = account.TotalEarned.Add(reward)
		account.FarmingStartTime = nil
		account.FarmingEndTime = nil

		description := fmt.Sprintf("Farming completed: %sh × %s USDT/h × %sx",
			farmingHours(start, end).String(),
			account.FarmingRate.StringFixed(2),
			multiplier.StringFixed(2),
		)
		_, err := service.ledger.Credit(ctx, tx, account, reward, models.TransactionKindFarming, description)
		return err
	})
}

// Status is the read-only view of the current session.
func (service *ServiceFarming) Status(ctx context.Context, accountID int64) (*models.FarmingStatus, error) {
	account, err := service.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, notFound(err, ErrAccountNotFound)
	}

	return service.StatusOf(account), nil
}

func (service *ServiceFarming) StatusOf(account *models.Account) *models.FarmingStatus {
	now := service.clock.Now()
	multiplier := account.EffectiveMultiplier(now)
	status := &models.FarmingStatus{
		Phase:           models.FarmingPhaseIdle,
		Rate:            account.FarmingRate,
		Multiplier:      multiplier,
		ProjectedReward: FarmingReward(now, now.Add(FarmingSessionLength), account.FarmingRate, multiplier),
	}

	if !account.HasFarmingSession() {
		return status
	}

	status.StartTime = account.FarmingStartTime
	status.EndTime = account.FarmingEndTime
	status.ProjectedReward = FarmingReward(*account.FarmingStartTime, *account.FarmingEndTime, account.FarmingRate, multiplier)
	if now.Before(*account.FarmingEndTime) {
		status.Phase = models.FarmingPhaseRunning
		status.RemainingSeconds = int64(account.FarmingEndTime.Sub(now) / time.Second)
	} else {
		status.Phase = models.FarmingPhaseClaimable
	}

	return status
}
