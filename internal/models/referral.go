package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

const MaxReferralLevel = 3

type Referral struct {
	bun.BaseModel `bun:"table:referral"`
	ID            int64           `bun:"id,pk,autoincrement" json:"id"`
	ReferrerID    int64           `bun:"referrer_id,notnull" json:"referrer_id"`
	ReferredID    int64           `bun:"referred_id,notnull" json:"referred_id"`
	Level         int             `bun:"level,notnull" json:"level"`
	Commission    decimal.Decimal `bun:"commission,type:numeric(10,2),notnull" json:"commission"`
	CreatedAt     time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type ReferralStats struct {
	Level1 int `json:"level1"`
	Level2 int `json:"level2"`
	Level3 int `json:"level3"`
}
