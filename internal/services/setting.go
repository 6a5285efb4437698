package services

import (
	"context"
	"strconv"
	"strings"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"
	"farmingpro/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/shopspring/decimal"
)

type ServiceSetting struct {
	container     *do.Injector
	repo          interfaces.Repository
	clock         interfaces.Clock
	cache         caching.Cache
	readonlyCache caching.ReadOnlyCache
}

func NewServiceSetting(container *do.Injector) (*ServiceSetting, error) {
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

	return &ServiceSetting{container, repo, clock, cache, readonlyCache}, nil
}

func (service *ServiceSetting) Get(ctx context.Context, key string) (*models.Setting, error) {
	callback := func() (*models.Setting, error) {
		setting, err := service.repo.FindSettingByKey(ctx, key)
		if err != nil {
			return nil, notFound(err, ErrSettingNotFound)
		}
		return setting, nil
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeySetting(key), CACHE_TTL_5_MINS, callback)
}

func (service *ServiceSetting) List(ctx context.Context) ([]models.Setting, error) {
	return service.repo.ListSettings(ctx)
}

func (service *ServiceSetting) Set(ctx context.Context, key string, value string) (*models.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrInvalidSetting
	}

	setting := &models.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: service.clock.Now(),
	}
	err := service.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		return tx.UpsertSetting(ctx, setting)
	})
	if err != nil {
		return nil, err
	}

	caching.Invalidate(ctx, service.cache, DBKeySetting(key))
	return setting, nil
}

// GetDecimal falls back to defaultValue when the key is missing or unparsable.
func (service *ServiceSetting) GetDecimal(ctx context.Context, key string, defaultValue decimal.Decimal) decimal.Decimal {
	setting, err := service.Get(ctx, key)
	if err != nil {
		return defaultValue
	}

	value, err := decimal.NewFromString(strings.TrimSpace(setting.Value))
	if err != nil {
		return defaultValue
	}
	return value
}

func (service *ServiceSetting) GetBool(ctx context.Context, key string, defaultValue bool) bool {
	setting, err := service.Get(ctx, key)
	if err != nil {
		return defaultValue
	}

	value, err := strconv.ParseBool(strings.TrimSpace(setting.Value))
	if err != nil {
		return defaultValue
	}
	return value
}
