package services

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"

	"github.com/samber/do"
	"github.com/shopspring/decimal"
)

type ServiceReferral struct {
	container      *do.Injector
	repo           interfaces.Repository
	clock          interfaces.Clock
	serviceSetting *ServiceSetting
}

func NewServiceReferral(container *do.Injector) (*ServiceReferral, error) {
	repo, err := do.Invoke[interfaces.Repository](container)
	if err != nil {
		return nil, err
	}

	clock, err := do.Invoke[interfaces.Clock](container)
	if err != nil {
		return nil, err
	}

	serviceSetting, err := do.Invoke[*ServiceSetting](container)
	if err != nil {
		return nil, err
	}

	return &ServiceReferral{container, repo, clock, serviceSetting}, nil
}

// Propagate records the upward edges of a freshly created account: level 1
// from its referrer, then the referrer's own chain up to MaxReferralLevel.
func (service *ServiceReferral) Propagate(ctx context.Context, tx interfaces.Tx, referredID int64, referrerID int64) ([]models.Referral, error) {
	now := service.clock.Now()
	visited := map[int64]bool{referredID: true}
	referrals := []models.Referral{}

	current := referrerID
	for level := 1; level <= models.MaxReferralLevel; level++ {
		if visited[current] {
			break
		}
		visited[current] = true

		referrer, err := tx.FindAccountByID(ctx, current)
		if errors.Is(err, sql.ErrNoRows) {
			break
		}
		if err != nil {
			return nil, err
		}

		referral := models.Referral{
			ReferrerID: current,
			ReferredID: referredID,
			Level:      level,
			Commission: service.commission(ctx, level),
			CreatedAt:  now,
		}
		if err := tx.InsertReferral(ctx, &referral); err != nil {
			return nil, err
		}
		referrals = append(referrals, referral)

		if referrer.ReferrerID == nil {
			break
		}
		current = *referrer.ReferrerID
	}

	return referrals, nil
}

func (service *ServiceReferral) commission(ctx context.Context, level int) decimal.Decimal {
	return service.serviceSetting.GetDecimal(ctx, SettingKeyReferralCommission(level), decimal.NewFromInt(defaultReferralCommission[level]))
}

func (service *ServiceReferral) List(ctx context.Context, accountID int64) ([]models.Referral, error) {
	return service.repo.ListReferralsByReferrer(ctx, accountID)
}

func (service *ServiceReferral) Stats(ctx context.Context, accountID int64) (*models.ReferralStats, error) {
	referrals, err := service.repo.ListReferralsByReferrer(ctx, accountID)
	if err != nil {
		return nil, err
	}

	stats := &models.ReferralStats{}
	for _, referral := range referrals {
		switch referral.Level {
		case 1:
			stats.Level1++
		case 2:
			stats.Level2++
		case 3:
			stats.Level3++
		}
	}
	return stats, nil
}

// ReferrerFromStartParam extracts the referrer id from a "ref_<id>" start parameter.
func ReferrerFromStartParam(param string) *int64 {
	param = strings.TrimSpace(param)
	if !strings.HasPrefix(param, REFERRAL_START_PARAM_PREFIX) {
		return nil
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(param, REFERRAL_START_PARAM_PREFIX), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
