package datastore

import (
	"context"
	"time"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"

	"github.com/uptrace/bun"
)

// Repository is the Postgres backed store. Writes run inside bun transactions.
type Repository struct {
	store
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{store{db}, db}
}

func (r *Repository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.Tx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &store{tx})
	})
}

func CreateTables(ctx context.Context, db *bun.DB) error {
	for _, create := range []func(context.Context, *bun.DB) error{
		CreateTableAccount,
		CreateTableTransaction,
		CreateTableTask,
		CreateTableReferral,
		CreateTableBoost,
		CreateTableSetting,
	} {
		if err := create(ctx, db); err != nil {
			return err
		}
	}
	return nil
}

type store struct {
	db bun.IDB
}

func (s *store) FindAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	return FindAccountByID(ctx, s.db, id)
}

func (s *store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return ListAccounts(ctx, s.db)
}

func (s *store) AccountTotals(ctx context.Context) (*models.Stats, error) {
	return AccountTotals(ctx, s.db)
}

func (s *store) FindTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	return FindTransactionByID(ctx, s.db, id)
}

func (s *store) ListTransactionsByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	return ListTransactionsByAccount(ctx, s.db, accountID)
}

func (s *store) ListTransactionsByKindStatus(ctx context.Context, kind models.TransactionKind, status models.TransactionStatus) ([]models.Transaction, error) {
	return ListTransactionsByKindStatus(ctx, s.db, kind, status)
}

func (s *store) FindTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	return FindTaskByID(ctx, s.db, id)
}

func (s *store) ListTasks(ctx context.Context, onlyActive bool) ([]models.Task, error) {
	return ListTasks(ctx, s.db, onlyActive)
}

func (s *store) FindTaskCompletion(ctx context.Context, accountID int64, taskID int64) (*models.TaskCompletion, error) {
	return FindTaskCompletion(ctx, s.db, accountID, taskID)
}

func (s *store) ListTaskCompletions(ctx context.Context, accountID int64) ([]models.TaskCompletion, error) {
	return ListTaskCompletions(ctx, s.db, accountID)
}

func (s *store) ListReferralsByReferrer(ctx context.Context, referrerID int64) ([]models.Referral, error) {
	return ListReferralsByReferrer(ctx, s.db, referrerID)
}

func (s *store) FindBoostByID(ctx context.Context, id int64) (*models.Boost, error) {
	return FindBoostByID(ctx, s.db, id)
}

func (s *store) ListBoosts(ctx context.Context, onlyActive bool) ([]models.Boost, error) {
	return ListBoosts(ctx, s.db, onlyActive)
}

func (s *store) FindActiveBoostPurchase(ctx context.Context, accountID int64, now time.Time) (*models.BoostPurchase, error) {
	return FindActiveBoostPurchase(ctx, s.db, accountID, now)
}

func (s *store) FindSettingByKey(ctx context.Context, key string) (*models.Setting, error) {
	return FindSettingByKey(ctx, s.db, key)
}

func (s *store) ListSettings(ctx context.Context) ([]models.Setting, error) {
	return ListSettings(ctx, s.db)
}

func (s *store) LockAccount(ctx context.Context, id int64) (*models.Account, error) {
	return LockAccountByID(ctx, s.db, id)
}

func (s *store) InsertAccount(ctx context.Context, account *models.Account) error {
	return InsertAccount(ctx, s.db, account)
}

func (s *store) UpdateAccount(ctx context.Context, account *models.Account) error {
	return UpdateAccount(ctx, s.db, account)
}

func (s *store) ResetExpiredBoosts(ctx context.Context, now time.Time) (int, error) {
	return ResetExpiredBoosts(ctx, s.db, now)
}

func (s *store) InsertTransaction(ctx context.Context, transaction *models.Transaction) error {
	return InsertTransaction(ctx, s.db, transaction)
}

func (s *store) UpdateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return UpdateTransaction(ctx, s.db, transaction)
}

func (s *store) InsertTask(ctx context.Context, task *models.Task) error {
	return InsertTask(ctx, s.db, task)
}

func (s *store) UpdateTask(ctx context.Context, task *models.Task) error {
	return UpdateTask(ctx, s.db, task)
}

func (s *store) InsertTaskCompletion(ctx context.Context, completion *models.TaskCompletion) error {
	return InsertTaskCompletion(ctx, s.db, completion)
}

func (s *store) InsertReferral(ctx context.Context, referral *models.Referral) error {
	return InsertReferral(ctx, s.db, referral)
}

func (s *store) InsertBoost(ctx context.Context, boost *models.Boost) error {
	return InsertBoost(ctx, s.db, boost)
}

func (s *store) InsertBoostPurchase(ctx context.Context, purchase *models.BoostPurchase) error {
	return InsertBoostPurchase(ctx, s.db, purchase)
}

func (s *store) UpsertSetting(ctx context.Context, setting *models.Setting) error {
	return UpsertSetting(ctx, s.db, setting)
}
