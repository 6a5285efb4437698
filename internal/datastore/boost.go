package datastore

import (
	"context"
	"time"

	"farmingpro/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableBoost(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Boost)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateTable().Model((*models.BoostPurchase)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.BoostPurchase)(nil)).Index("index_boost_purchase_account_id_expires_at").IfNotExists().Column("account_id", "expires_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindBoostByID(ctx context.Context, db bun.IDB, id int64) (*models.Boost, error) {
	var boost models.Boost
	err := db.NewSelect().Model(&boost).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &boost, nil
}

func ListBoosts(ctx context.Context, db bun.IDB, onlyActive bool) ([]models.Boost, error) {
	var boosts []models.Boost
	q := db.NewSelect().Model(&boosts)
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("price ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return boosts, nil
}

func InsertBoost(ctx context.Context, db bun.IDB, boost *models.Boost) error {
	_, err := db.NewInsert().Model(boost).Returning("*").Exec(ctx)
	return err
}

func FindActiveBoostPurchase(ctx context.Context, db bun.IDB, accountID int64, now time.Time) (*models.BoostPurchase, error) {
	var purchase models.BoostPurchase
	err := db.NewSelect().Model(&purchase).
		Where("account_id = ?", accountID).
		Where("expires_at > ?", now).
		OrderExpr("purchased_at DESC, id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	boost, err := FindBoostByID(ctx, db, purchase.BoostID)
	if err != nil {
		return nil, err
	}
	purchase.Boost = boost
	return &purchase, nil
}

func InsertBoostPurchase(ctx context.Context, db bun.IDB, purchase *models.BoostPurchase) error {
	_, err := db.NewInsert().Model(purchase).Returning("*").Exec(ctx)
	return err
}
