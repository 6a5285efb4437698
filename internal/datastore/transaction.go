package datastore

import (
	"context"

	"farmingpro/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableTransaction(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Transaction)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Transaction)(nil)).Index("index_transaction_account_id_created_at").IfNotExists().Column("account_id", "created_at").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Transaction)(nil)).Index("index_transaction_kind_status").IfNotExists().Column("kind", "status").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Transaction)(nil)).Index("index_transaction_ref").Unique().IfNotExists().Column("ref").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindTransactionByID(ctx context.Context, db bun.IDB, id int64) (*models.Transaction, error) {
	var transaction models.Transaction
	err := db.NewSelect().Model(&transaction).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func ListTransactionsByAccount(ctx context.Context, db bun.IDB, accountID int64) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := db.NewSelect().Model(&transactions).Where("account_id = ?", accountID).OrderExpr("created_at DESC, id DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func ListTransactionsByKindStatus(ctx context.Context, db bun.IDB, kind models.TransactionKind, status models.TransactionStatus) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := db.NewSelect().Model(&transactions).
		Where("kind = ?", kind).
		Where("status = ?", status).
		OrderExpr("created_at DESC, id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func InsertTransaction(ctx context.Context, db bun.IDB, transaction *models.Transaction) error {
	_, err := db.NewInsert().Model(transaction).Returning("*").Exec(ctx)
	return err
}

func UpdateTransaction(ctx context.Context, db bun.IDB, transaction *models.Transaction) error {
	_, err := db.NewUpdate().Model(transaction).
		Column("status", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}
