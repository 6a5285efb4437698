package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type Boost struct {
	bun.BaseModel `bun:"table:boost"`
	ID            int64           `bun:"id,pk,autoincrement" json:"id"`
	Name          string          `bun:"name,notnull" json:"name"`
	Description   string          `bun:"description" json:"description"`
	Multiplier    decimal.Decimal `bun:"multiplier,type:numeric(10,2),notnull" json:"multiplier"`
	Duration      int             `bun:"duration,notnull" json:"duration"` // hours
	Price         decimal.Decimal `bun:"price,type:numeric(20,2),notnull" json:"price"`
	IsActive      bool            `bun:"is_active,notnull" json:"is_active"`
}

type BoostPurchase struct {
	bun.BaseModel `bun:"table:boost_purchase"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	AccountID     int64     `bun:"account_id,notnull" json:"account_id"`
	BoostID       int64     `bun:"boost_id,notnull" json:"boost_id"`
	PurchasedAt   time.Time `bun:"purchased_at,notnull" json:"purchased_at"`
	ExpiresAt     time.Time `bun:"expires_at,notnull" json:"expires_at"`

	Boost *Boost `bun:"-" json:"boost,omitempty"`
}
