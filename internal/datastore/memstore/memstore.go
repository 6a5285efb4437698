// Package memstore is an in-process implementation of the repository used by
// tests and local runs without Postgres.
package memstore

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"

	"github.com/shopspring/decimal"
)

type state struct {
	accounts     map[int64]models.Account
	transactions map[int64]models.Transaction
	tasks        map[int64]models.Task
	completions  map[int64]models.TaskCompletion
	referrals    map[int64]models.Referral
	boosts       map[int64]models.Boost
	purchases    map[int64]models.BoostPurchase
	settings     map[string]models.Setting
	seq          int64
}

func newState() *state {
	return &state{
		accounts:     map[int64]models.Account{},
		transactions: map[int64]models.Transaction{},
		tasks:        map[int64]models.Task{},
		completions:  map[int64]models.TaskCompletion{},
		referrals:    map[int64]models.Referral{},
		boosts:       map[int64]models.Boost{},
		purchases:    map[int64]models.BoostPurchase{},
		settings:     map[string]models.Setting{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.tasks {
		c.tasks[k] = v
	}
	for k, v := range s.completions {
		c.completions[k] = v
	}
	for k, v := range s.referrals {
		c.referrals[k] = v
	}
	for k, v := range s.boosts {
		c.boosts[k] = v
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.settings {
		c.settings[k] = v
	}
	c.seq = s.seq
	return c
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

// Store keeps every row in memory. Write units are serialized and applied on
// a private copy that replaces the visible state only when the unit succeeds.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	cur  *state
}

func New() *Store {
	return &Store{cur: newState()}
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	staged := s.snapshot().clone()
	if err := fn(ctx, &view{staged}); err != nil {
		return err
	}

	s.mu.Lock()
	s.cur = staged
	s.mu.Unlock()
	return nil
}

func (s *Store) FindAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	return (&view{s.snapshot()}).FindAccountByID(ctx, id)
}

func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return (&view{s.snapshot()}).ListAccounts(ctx)
}

func (s *Store) AccountTotals(ctx context.Context) (*models.Stats, error) {
	return (&view{s.snapshot()}).AccountTotals(ctx)
}

func (s *Store) FindTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	return (&view{s.snapshot()}).FindTransactionByID(ctx, id)
}

func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	return (&view{s.snapshot()}).ListTransactionsByAccount(ctx, accountID)
}

func (s *Store) ListTransactionsByKindStatus(ctx context.Context, kind models.TransactionKind, status models.TransactionStatus) ([]models.Transaction, error) {
	return (&view{s.snapshot()}).ListTransactionsByKindStatus(ctx, kind, status)
}

func (s *Store) FindTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	return (&view{s.snapshot()}).FindTaskByID(ctx, id)
}

func (s *Store) ListTasks(ctx context.Context, onlyActive bool) ([]models.Task, error) {
	return (&view{s.snapshot()}).ListTasks(ctx, onlyActive)
}

func (s *Store) FindTaskCompletion(ctx context.Context, accountID int64, taskID int64) (*models.TaskCompletion, error) {
	return (&view{s.snapshot()}).FindTaskCompletion(ctx, accountID, taskID)
}

func (s *Store) ListTaskCompletions(ctx context.Context, accountID int64) ([]models.TaskCompletion, error) {
	return (&view{s.snapshot()}).ListTaskCompletions(ctx, accountID)
}

func (s *Store) ListReferralsByReferrer(ctx context.Context, referrerID int64) ([]models.Referral, error) {
	return (&view{s.snapshot()}).ListReferralsByReferrer(ctx, referrerID)
}

func (s *Store) FindBoostByID(ctx context.Context, id int64) (*models.Boost, error) {
	return (&view{s.snapshot()}).FindBoostByID(ctx, id)
}

func (s *Store) ListBoosts(ctx context.Context, onlyActive bool) ([]models.Boost, error) {
	return (&view{s.snapshot()}).ListBoosts(ctx, onlyActive)
}

func (s *Store) FindActiveBoostPurchase(ctx context.Context, accountID int64, now time.Time) (*models.BoostPurchase, error) {
	return (&view{s.snapshot()}).FindActiveBoostPurchase(ctx, accountID, now)
}

func (s *Store) FindSettingByKey(ctx context.Context, key string) (*models.Setting, error) {
	return (&view{s.snapshot()}).FindSettingByKey(ctx, key)
}

func (s *Store) ListSettings(ctx context.Context) ([]models.Setting, error) {
	return (&view{s.snapshot()}).ListSettings(ctx)
}

type view struct {
	st *state
}

func (v *view) FindAccountByID(_ context.Context, id int64) (*models.Account, error) {
	account, ok := v.st.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &account, nil
}

func (v *view) ListAccounts(_ context.Context) ([]models.Account, error) {
	accounts := make([]models.Account, 0, len(v.st.accounts))
	for _, account := range v.st.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID > accounts[j].ID
		}
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (v *view) AccountTotals(_ context.Context) (*models.Stats, error) {
	stats := &models.Stats{TotalUsdt: decimal.Zero}
	for _, account := range v.st.accounts {
		stats.TotalUsers++
		stats.TotalUsdt = stats.TotalUsdt.Add(account.Balance)
		if account.HasFarmingSession() {
			stats.ActiveFarmers++
		}
	}
	return stats, nil
}

func (v *view) FindTransactionByID(_ context.Context, id int64) (*models.Transaction, error) {
	transaction, ok := v.st.transactions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &transaction, nil
}

func (v *view) filterTransactions(keep func(models.Transaction) bool) []models.Transaction {
	transactions := []models.Transaction{}
	for _, transaction := range v.st.transactions {
		if keep(transaction) {
			transactions = append(transactions, transaction)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].CreatedAt.Equal(transactions[j].CreatedAt) {
			return transactions[i].ID > transactions[j].ID
		}
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions
}

func (v *view) ListTransactionsByAccount(_ context.Context, accountID int64) ([]models.Transaction, error) {
	return v.filterTransactions(func(t models.Transaction) bool {
		return t.AccountID == accountID
	}), nil
}

func (v *view) ListTransactionsByKindStatus(_ context.Context, kind models.TransactionKind, status models.TransactionStatus) ([]models.Transaction, error) {
	return v.filterTransactions(func(t models.Transaction) bool {
		return t.Kind == kind && t.Status == status
	}), nil
}

func (v *view) FindTaskByID(_ context.Context, id int64) (*models.Task, error) {
	task, ok := v.st.tasks[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &task, nil
}

func (v *view) ListTasks(_ context.Context, onlyActive bool) ([]models.Task, error) {
	tasks := []models.Task{}
	for _, task := range v.st.tasks {
		if onlyActive && !task.IsActive {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (v *view) FindTaskCompletion(_ context.Context, accountID int64, taskID int64) (*models.TaskCompletion, error) {
	for _, completion := range v.st.completions {
		if completion.AccountID == accountID && completion.TaskID == taskID {
			return &completion, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (v *view) ListTaskCompletions(_ context.Context, accountID int64) ([]models.TaskCompletion, error) {
	completions := []models.TaskCompletion{}
	for _, completion := range v.st.completions {
		if completion.AccountID == accountID {
			completions = append(completions, completion)
		}
	}
	sort.Slice(completions, func(i, j int) bool { return completions[i].ID < completions[j].ID })
	return completions, nil
}

func (v *view) ListReferralsByReferrer(_ context.Context, referrerID int64) ([]models.Referral, error) {
	referrals := []models.Referral{}
	for _, referral := range v.st.referrals {
		if referral.ReferrerID == referrerID {
			referrals = append(referrals, referral)
		}
	}
	sort.Slice(referrals, func(i, j int) bool {
		if referrals[i].Level == referrals[j].Level {
			return referrals[i].ID > referrals[j].ID
		}
		return referrals[i].Level < referrals[j].Level
	})
	return referrals, nil
}

func (v *view) FindBoostByID(_ context.Context, id int64) (*models.Boost, error) {
	boost, ok := v.st.boosts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &boost, nil
}

func (v *view) ListBoosts(_ context.Context, onlyActive bool) ([]models.Boost, error) {
	boosts := []models.Boost{}
	for _, boost := range v.st.boosts {
		if onlyActive && !boost.IsActive {
			continue
		}
		boosts = append(boosts, boost)
	}
	sort.Slice(boosts, func(i, j int) bool {
		if boosts[i].Price.Equal(boosts[j].Price) {
			return boosts[i].ID < boosts[j].ID
		}
		return boosts[i].Price.LessThan(boosts[j].Price)
	})
	return boosts, nil
}

func (v *view) FindActiveBoostPurchase(ctx context.Context, accountID int64, now time.Time) (*models.BoostPurchase, error) {
	var latest *models.BoostPurchase
	for _, purchase := range v.st.purchases {
		if purchase.AccountID != accountID || !purchase.ExpiresAt.After(now) {
			continue
		}
		purchase := purchase
		if latest == nil ||
			purchase.PurchasedAt.After(latest.PurchasedAt) ||
			(purchase.PurchasedAt.Equal(latest.PurchasedAt) && purchase.ID > latest.ID) {
			latest = &purchase
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}

	boost, err := v.FindBoostByID(ctx, latest.BoostID)
	if err != nil {
		return nil, err
	}
	latest.Boost = boost
	return latest, nil
}

func (v *view) FindSettingByKey(_ context.Context, key string) (*models.Setting, error) {
	setting, ok := v.st.settings[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &setting, nil
}

func (v *view) ListSettings(_ context.Context) ([]models.Setting, error) {
	settings := make([]models.Setting, 0, len(v.st.settings))
	for _, setting := range v.st.settings {
		settings = append(settings, setting)
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}

// LockAccount needs no row lock here, the whole unit is already exclusive.
func (v *view) LockAccount(ctx context.Context, id int64) (*models.Account, error) {
	return v.FindAccountByID(ctx, id)
}

func (v *view) InsertAccount(_ context.Context, account *models.Account) error {
	if _, ok := v.st.accounts[account.ID]; ok {
		return ErrDuplicateKey
	}
	stored := *account
	stored.IsNewAccount = false
	v.st.accounts[account.ID] = stored
	return nil
}

func (v *view) UpdateAccount(_ context.Context, account *models.Account) error {
	if _, ok := v.st.accounts[account.ID]; !ok {
		return sql.ErrNoRows
	}
	stored := *account
	stored.IsNewAccount = false
	v.st.accounts[account.ID] = stored
	return nil
}

func (v *view) ResetExpiredBoosts(_ context.Context, now time.Time) (int, error) {
	n := 0
	for id, account := range v.st.accounts {
		if account.BoostEndTime == nil || account.BoostEndTime.After(now) {
			continue
		}
		account.BoostMultiplier = decimal.NewFromInt(1)
		account.BoostEndTime = nil
		account.UpdatedAt = now
		v.st.accounts[id] = account
		n++
	}
	return n, nil
}

func (v *view) InsertTransaction(_ context.Context, transaction *models.Transaction) error {
	transaction.ID = v.st.nextID()
	v.st.transactions[transaction.ID] = *transaction
	return nil
}

func (v *view) UpdateTransaction(_ context.Context, transaction *models.Transaction) error {
	existing, ok := v.st.transactions[transaction.ID]
	if !ok {
		return sql.ErrNoRows
	}
	existing.Status = transaction.Status
	existing.UpdatedAt = transaction.UpdatedAt
	v.st.transactions[transaction.ID] = existing
	return nil
}

func (v *view) InsertTask(_ context.Context, task *models.Task) error {
	task.ID = v.st.nextID()
	v.st.tasks[task.ID] = *task
	return nil
}

func (v *view) UpdateTask(_ context.Context, task *models.Task) error {
	existing, ok := v.st.tasks[task.ID]
	if !ok {
		return sql.ErrNoRows
	}
	existing.IsActive = task.IsActive
	v.st.tasks[task.ID] = existing
	return nil
}

func (v *view) InsertTaskCompletion(_ context.Context, completion *models.TaskCompletion) error {
	for _, c := range v.st.completions {
		if c.AccountID == completion.AccountID && c.TaskID == completion.TaskID {
			return ErrDuplicateKey
		}
	}
	completion.ID = v.st.nextID()
	v.st.completions[completion.ID] = *completion
	return nil
}

func (v *view) InsertReferral(_ context.Context, referral *models.Referral) error {
	for _, r := range v.st.referrals {
		if r.ReferrerID == referral.ReferrerID && r.ReferredID == referral.ReferredID {
			return ErrDuplicateKey
		}
	}
	referral.ID = v.st.nextID()
	v.st.referrals[referral.ID] = *referral
	return nil
}

func (v *view) InsertBoost(_ context.Context, boost *models.Boost) error {
	boost.ID = v.st.nextID()
	v.st.boosts[boost.ID] = *boost
	return nil
}

func (v *view) InsertBoostPurchase(_ context.Context, purchase *models.BoostPurchase) error {
	purchase.ID = v.st.nextID()
	stored := *purchase
	stored.Boost = nil
	v.st.purchases[purchase.ID] = stored
	return nil
}

func (v *view) UpsertSetting(_ context.Context, setting *models.Setting) error {
	v.st.settings[setting.Key] = *setting
	return nil
}
