package services

import (
	"farmingpro/internal/interfaces"

	"github.com/samber/do"
)

// Provide registers the domain services. The injector must already carry the
// "envs" map, interfaces.Repository, interfaces.Locker, interfaces.Clock,
// interfaces.Limiter, both caches and the logger.
func Provide(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Bot, error) {
		vs, err := do.InvokeNamed[map[string]string](i, "envs")
		if err != nil {
			return nil, err
		}
		return NewBot(vs["BOT_TOKEN"], vs["TELEGRAM_WEB_APP_URL"], vs["INIT_DATA_SKIP_VALIDATION"] == "true")
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Notifier, error) {
		return do.Invoke[*Bot](i)
	})

	do.Provide(injector, func(i *do.Injector) (*Authentication, error) {
		vs, err := do.InvokeNamed[map[string]string](i, "envs")
		if err != nil {
			return nil, err
		}
		return NewAuthentication(vs["JWT_SECRET"])
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.TaskVerifier, error) {
		return NewTelegramTaskVerifier(i)
	})

	do.Provide(injector, NewServiceLedger)
	do.Provide(injector, NewServiceSetting)
	do.Provide(injector, NewServiceFarming)
	do.Provide(injector, NewServiceReferral)
	do.Provide(injector, NewServiceBoost)
	do.Provide(injector, NewServiceTask)
	do.Provide(injector, NewServiceWithdrawal)
	do.Provide(injector, NewServiceAccount)
	do.Provide(injector, NewServiceAdmin)
}
