package datastore

import (
	"context"

	"farmingpro/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableReferral(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Referral)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Referral)(nil)).Index("index_referral_referrer_id_level").IfNotExists().Column("referrer_id", "level").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Referral)(nil)).Index("index_referral_referrer_id_referred_id").Unique().IfNotExists().Column("referrer_id", "referred_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func ListReferralsByReferrer(ctx context.Context, db bun.IDB, referrerID int64) ([]models.Referral, error) {
	var referrals []models.Referral
	err := db.NewSelect().Model(&referrals).Where("referrer_id = ?", referrerID).Order("level ASC", "created_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return referrals, nil
}

func InsertReferral(ctx context.Context, db bun.IDB, referral *models.Referral) error {
	_, err := db.NewInsert().Model(referral).Returning("*").Exec(ctx)
	return err
}
