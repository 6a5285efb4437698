package main

import (
	"context"
	"strings"

	"farmingpro/internal/pkg/logger"
	"farmingpro/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/samber/do"
)

const (
	SETTING_CRON_BOOST_EXPIRY = "cron_boost_expiry"
	SETTING_CRON_STATS        = "cron_stats"

	defaultBoostExpirySpec = "@every 1m"
	defaultStatsSpec       = "@hourly"
)

// schedule reads the cron spec from settings, falling back to def.
func schedule(ctx context.Context, serviceSetting *services.ServiceSetting, key string, def string) string {
	setting, err := serviceSetting.Get(ctx, key)
	if err != nil || strings.TrimSpace(setting.Value) == "" {
		return def
	}
	return strings.TrimSpace(setting.Value)
}

type BoostExpiryJob struct {
	serviceAdmin   *services.ServiceAdmin
	serviceSetting *services.ServiceSetting
	logger         *logger.Logger
}

func NewBoostExpiryJob(injector *do.Injector) *BoostExpiryJob {
	return &BoostExpiryJob{
		serviceAdmin:   do.MustInvoke[*services.ServiceAdmin](injector),
		serviceSetting: do.MustInvoke[*services.ServiceSetting](injector),
		logger:         do.MustInvoke[*logger.Logger](injector),
	}
}

func (j *BoostExpiryJob) Start(cronRunner *cron.Cron) error {
	spec := schedule(context.Background(), j.serviceSetting, SETTING_CRON_BOOST_EXPIRY, defaultBoostExpirySpec)
	_, err := cronRunner.AddFunc(spec, j.run)
	if err != nil {
		return err
	}

	j.logger.WithField("cron", spec).Info("boost expiry job scheduled")
	return nil
}

func (j *BoostExpiryJob) run() {
	n, err := j.serviceAdmin.ExpireBoosts(context.Background())
	if err != nil {
		j.logger.WithError(err).Error("expire boosts")
		return
	}
	if n > 0 {
		j.logger.WithField("accounts", n).Info("boosts expired")
	}
}

type StatsJob struct {
	serviceAdmin   *services.ServiceAdmin
	serviceSetting *services.ServiceSetting
	logger         *logger.Logger
}

func NewStatsJob(injector *do.Injector) *StatsJob {
	return &StatsJob{
		serviceAdmin:   do.MustInvoke[*services.ServiceAdmin](injector),
		serviceSetting: do.MustInvoke[*services.ServiceSetting](injector),
		logger:         do.MustInvoke[*logger.Logger](injector),
	}
}

func (j *StatsJob) Start(cronRunner *cron.Cron) error {
	spec := schedule(context.Background(), j.serviceSetting, SETTING_CRON_STATS, defaultStatsSpec)
	_, err := cronRunner.AddFunc(spec, j.run)
	if err != nil {
		return err
	}

	j.logger.WithField("cron", spec).Info("stats job scheduled")
	return nil
}

func (j *StatsJob) run() {
	stats, err := j.serviceAdmin.Stats(context.Background())
	if err != nil {
		j.logger.WithError(err).Error("stats")
		return
	}

	j.logger.
		WithField("total_users", stats.TotalUsers).
		WithField("total_usdt", stats.TotalUsdt.StringFixed(2)).
		WithField("active_farmers", stats.ActiveFarmers).
		WithField("pending_withdrawals", stats.PendingWithdrawals).
		Info("dashboard stats")
}
