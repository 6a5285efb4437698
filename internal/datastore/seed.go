package datastore

import (
	"context"
	"time"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"

	"github.com/shopspring/decimal"
)

func DefaultTasks() []models.Task {
	return []models.Task{
		{
			Title:       "Join Telegram Channel",
			Description: "Join our official Telegram channel",
			Reward:      decimal.NewFromInt(500),
			Category:    models.TaskCategoryTelegram,
			URL:         "https://t.me/farmingpro",
			Icon:        "telegram",
			IsActive:    true,
		},
		{
			Title:       "Follow Instagram",
			Description: "Follow us on Instagram",
			Reward:      decimal.NewFromInt(300),
			Category:    models.TaskCategoryInstagram,
			URL:         "https://instagram.com/farmingpro",
			Icon:        "instagram",
			IsActive:    true,
		},
		{
			Title:       "Subscribe YouTube",
			Description: "Subscribe to our YouTube channel",
			Reward:      decimal.NewFromInt(800),
			Category:    models.TaskCategoryYoutube,
			URL:         "https://youtube.com/@farmingpro",
			Icon:        "youtube",
			IsActive:    true,
		},
	}
}

func DefaultBoosts() []models.Boost {
	return []models.Boost{
		{Name: "Basic Boost", Description: "2x farming speed for 24 hours", Multiplier: decimal.NewFromInt(2), Duration: 24, Price: decimal.NewFromInt(100), IsActive: true},
		{Name: "Premium Boost", Description: "3x farming speed for 48 hours", Multiplier: decimal.NewFromInt(3), Duration: 48, Price: decimal.NewFromInt(250), IsActive: true},
		{Name: "VIP Boost", Description: "5x farming speed for 7 days", Multiplier: decimal.NewFromInt(5), Duration: 168, Price: decimal.NewFromInt(500), IsActive: true},
	}
}

func DefaultSettings() map[string]string {
	return map[string]string{
		"referral_level1_commission": "10",
		"referral_level2_commission": "5",
		"referral_level3_commission": "2",
		"deposit_enabled":            "true",
		"withdrawal_enabled":         "true",
	}
}

// Seed inserts the default catalog into an empty store. Settings already
// present keep their value.
func Seed(ctx context.Context, repo interfaces.Repository, now time.Time) error {
	return repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		tasks, err := tx.ListTasks(ctx, false)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			for _, task := range DefaultTasks() {
				task := task
				task.CreatedAt = now
				if err := tx.InsertTask(ctx, &task); err != nil {
					return err
				}
			}
		}

		boosts, err := tx.ListBoosts(ctx, false)
		if err != nil {
			return err
		}
		if len(boosts) == 0 {
			for _, boost := range DefaultBoosts() {
				boost := boost
				if err := tx.InsertBoost(ctx, &boost); err != nil {
					return err
				}
			}
		}

		existing, err := tx.ListSettings(ctx)
		if err != nil {
			return err
		}
		present := map[string]bool{}
		for _, s := range existing {
			present[s.Key] = true
		}
		for key, value := range DefaultSettings() {
			if present[key] {
				continue
			}
			if err := tx.UpsertSetting(ctx, &models.Setting{Key: key, Value: value, UpdatedAt: now}); err != nil {
				return err
			}
		}
		return nil
	})
}
