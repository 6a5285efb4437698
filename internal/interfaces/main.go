package interfaces

import (
	"context"
	"time"

	"farmingpro/internal/models"

	"github.com/go-redis/redis_rate/v10"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

// Locker serializes work on a key. The returned func releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type Clock interface {
	Now() time.Time
}

type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

type TaskVerifier interface {
	Verify(ctx context.Context, accountID int64, task *models.Task) (bool, error)
}

// Reader is the read side of the store. Missing rows are reported as sql.ErrNoRows.
type Reader interface {
	FindAccountByID(ctx context.Context, id int64) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	AccountTotals(ctx context.Context) (*models.Stats, error)

	FindTransactionByID(ctx context.Context, id int64) (*models.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error)
	ListTransactionsByKindStatus(ctx context.Context, kind models.TransactionKind, status models.TransactionStatus) ([]models.Transaction, error)

	FindTaskByID(ctx context.Context, id int64) (*models.Task, error)
	ListTasks(ctx context.Context, onlyActive bool) ([]models.Task, error)
	FindTaskCompletion(ctx context.Context, accountID int64, taskID int64) (*models.TaskCompletion, error)
	ListTaskCompletions(ctx context.Context, accountID int64) ([]models.TaskCompletion, error)

	ListReferralsByReferrer(ctx context.Context, referrerID int64) ([]models.Referral, error)

	FindBoostByID(ctx context.Context, id int64) (*models.Boost, error)
	ListBoosts(ctx context.Context, onlyActive bool) ([]models.Boost, error)
	FindActiveBoostPurchase(ctx context.Context, accountID int64, now time.Time) (*models.BoostPurchase, error)

	FindSettingByKey(ctx context.Context, key string) (*models.Setting, error)
	ListSettings(ctx context.Context) ([]models.Setting, error)
}

// Tx is one write unit. Nothing written through it is visible outside
// until the surrounding RunInTx returns nil.
type Tx interface {
	Reader

	// LockAccount reads the account and holds it until the unit ends.
	LockAccount(ctx context.Context, id int64) (*models.Account, error)
	InsertAccount(ctx context.Context, account *models.Account) error
	UpdateAccount(ctx context.Context, account *models.Account) error
	ResetExpiredBoosts(ctx context.Context, now time.Time) (int, error)

	InsertTransaction(ctx context.Context, transaction *models.Transaction) error
	UpdateTransaction(ctx context.Context, transaction *models.Transaction) error

	InsertTask(ctx context.Context, task *models.Task) error
	UpdateTask(ctx context.Context, task *models.Task) error
	InsertTaskCompletion(ctx context.Context, completion *models.TaskCompletion) error

	InsertReferral(ctx context.Context, referral *models.Referral) error

	InsertBoost(ctx context.Context, boost *models.Boost) error
	InsertBoostPurchase(ctx context.Context, purchase *models.BoostPurchase) error

	UpsertSetting(ctx context.Context, setting *models.Setting) error
}

type Repository interface {
	Reader
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
