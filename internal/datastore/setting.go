package datastore

import (
	"context"

	"farmingpro/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableSetting(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Setting)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func FindSettingByKey(ctx context.Context, db bun.IDB, key string) (*models.Setting, error) {
	var setting models.Setting
	err := db.NewSelect().Model(&setting).Where("key = ?", key).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func ListSettings(ctx context.Context, db bun.IDB) ([]models.Setting, error) {
	var settings []models.Setting
	err := db.NewSelect().Model(&settings).Order("key ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func UpsertSetting(ctx context.Context, db bun.IDB, setting *models.Setting) error {
	_, err := db.NewInsert().Model(setting).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}
