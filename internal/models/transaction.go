package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "deposit"
	TransactionKindWithdrawal TransactionKind = "withdrawal"
	TransactionKindFarming    TransactionKind = "farming"
	TransactionKindTask       TransactionKind = "task"
	TransactionKindReferral   TransactionKind = "referral"
	TransactionKindBoost      TransactionKind = "boost"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	}
	return false
}

type Transaction struct {
	bun.BaseModel `bun:"table:transaction"`
	ID            int64             `bun:"id,pk,autoincrement" json:"id"`
	Ref           uuid.UUID         `bun:"ref,type:uuid,notnull" json:"ref"`
	AccountID     int64             `bun:"account_id,notnull" json:"account_id"`
	Kind          TransactionKind   `bun:"kind,notnull" json:"kind"`
	Amount        decimal.Decimal   `bun:"amount,type:numeric(20,2),notnull" json:"amount"`
	Description   string            `bun:"description" json:"description"`
	Status        TransactionStatus `bun:"status,notnull" json:"status"`
	CreatedAt     time.Time         `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time         `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
