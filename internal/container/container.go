// Package container wires the process-wide dependencies shared by the
// binaries under cmd/.
package container

import (
	"database/sql"
	"os"

	"farmingpro/internal/datastore"
	"farmingpro/internal/interfaces"
	"farmingpro/internal/pkg/caching"
	"farmingpro/internal/pkg/clock"
	"farmingpro/internal/pkg/limiter"
	"farmingpro/internal/pkg/locker"
	"farmingpro/internal/pkg/logger"
	"farmingpro/internal/services"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var optionalEnvs = []string{
	"API_MODE",
	"API_ORIGINS",
	"DB_PASSWORD",
	"REDIS_CACHE",
	"REDIS_CACHE_READONLY",
	"REDIS_MUTEX",
	"REDIS_LIMITER",
	"TELEGRAM_WEB_APP_URL",
	"TELEGRAM_API_BASE_URL",
	"BOT_USERNAME",
	"INIT_DATA_SKIP_VALIDATION",
}

// Envs loads the required keys and fills in the optional ones with defaults.
func Envs(required ...string) (map[string]string, error) {
	vs, err := env.EnvsRequired(required...)
	if err != nil {
		return nil, err
	}

	for _, key := range optionalEnvs {
		if _, ok := vs[key]; !ok {
			vs[key] = os.Getenv(key)
		}
	}

	if vs["API_MODE"] == "" {
		vs["API_MODE"] = "production"
	}
	if vs["API_ORIGINS"] == "" {
		vs["API_ORIGINS"] = "*"
	}
	if vs["REDIS_CACHE_READONLY"] == "" {
		vs["REDIS_CACHE_READONLY"] = vs["REDIS_CACHE"]
	}

	return vs, nil
}

func redisClient(url string) (redis.UniversalClient, error) {
	return db.InitRedis(&db.RedisConfig{
		URL: url,
	})
}

func New(vs map[string]string) *do.Injector {
	injector := do.New()

	do.ProvideNamedValue(injector, "envs", vs)
	do.ProvideValue(injector, logger.New(vs["API_MODE"]))
	do.ProvideValue[interfaces.Clock](injector, clock.System{})

	do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(vs["DB_DSN"]),
			pgdriver.WithPassword(vs["DB_PASSWORD"]),
		))

		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Repository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewRepository(bunDB), nil
	})

	do.ProvideNamed(injector, "redis-cache", func(i *do.Injector) (redis.UniversalClient, error) {
		return redisClient(vs["REDIS_CACHE"])
	})

	do.ProvideNamed(injector, "redis-cache-readonly", func(i *do.Injector) (redis.UniversalClient, error) {
		return redisClient(vs["REDIS_CACHE_READONLY"])
	})

	do.ProvideNamed(injector, "redis-limiter", func(i *do.Injector) (redis.UniversalClient, error) {
		return redisClient(vs["REDIS_LIMITER"])
	})

	do.ProvideNamed(injector, "redis-mutex", func(i *do.Injector) (redis.UniversalClient, error) {
		return redisClient(vs["REDIS_MUTEX"])
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache")
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (caching.ReadOnlyCache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache-readonly")
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Limiter, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-limiter")
		if err != nil {
			return nil, err
		}

		return limiter.NewLimiter(dbRedis)
	})

	do.Provide(injector, func(i *do.Injector) (*redsync.Redsync, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-mutex")
		if err != nil {
			return nil, err
		}

		return redsync.New(goredis.NewPool(dbRedis)), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Locker, error) {
		rs, err := do.Invoke[*redsync.Redsync](i)
		if err != nil {
			return nil, err
		}
		return locker.NewRedsync(rs), nil
	})

	services.Provide(injector)
	return injector
}
