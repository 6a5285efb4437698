package datastore

import (
	"context"
	"time"

	"farmingpro/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableAccount(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Account)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Account)(nil)).Index("index_account_referrer_id").IfNotExists().Column("referrer_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Account)(nil)).Index("index_account_boost_end_time").IfNotExists().Column("boost_end_time").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindAccountByID(ctx context.Context, db bun.IDB, id int64) (*models.Account, error) {
	var account models.Account
	err := db.NewSelect().Model(&account).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func LockAccountByID(ctx context.Context, db bun.IDB, id int64) (*models.Account, error) {
	var account models.Account
	err := db.NewSelect().Model(&account).Where("id = ?", id).For("UPDATE").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func ListAccounts(ctx context.Context, db bun.IDB) ([]models.Account, error) {
	var accounts []models.Account
	err := db.NewSelect().Model(&accounts).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func AccountTotals(ctx context.Context, db bun.IDB) (*models.Stats, error) {
	var stats models.Stats
	err := db.NewSelect().Model((*models.Account)(nil)).
		ColumnExpr("count(*) AS total_users").
		ColumnExpr("coalesce(sum(balance), 0) AS total_usdt").
		ColumnExpr("count(*) FILTER (WHERE farming_start_time IS NOT NULL AND farming_end_time IS NOT NULL) AS active_farmers").
		Scan(ctx, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func InsertAccount(ctx context.Context, db bun.IDB, account *models.Account) error {
	_, err := db.NewInsert().Model(account).Exec(ctx)
	return err
}

func UpdateAccount(ctx context.Context, db bun.IDB, account *models.Account) error {
	_, err := db.NewUpdate().Model(account).WherePK().Exec(ctx)
	return err
}

func ResetExpiredBoosts(ctx context.Context, db bun.IDB, now time.Time) (int, error) {
	res, err := db.NewUpdate().Model((*models.Account)(nil)).
		Set("boost_multiplier = 1").
		Set("boost_end_time = NULL").
		Set("updated_at = ?", now).
		Where("boost_end_time IS NOT NULL").
		Where("boost_end_time <= ?", now).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
