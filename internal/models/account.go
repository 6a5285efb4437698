package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type Account struct {
	bun.BaseModel    `bun:"table:account"`
	ID               int64           `bun:"id,pk" json:"id"`
	Username         string          `bun:"username" json:"username"`
	FirstName        string          `bun:"first_name" json:"first_name"`
	LastName         string          `bun:"last_name" json:"last_name"`
	Balance          decimal.Decimal `bun:"balance,type:numeric(20,2),notnull,default:0" json:"balance"`
	TotalEarned      decimal.Decimal `bun:"total_earned,type:numeric(20,2),notnull,default:0" json:"total_earned"`
	ReferralEarnings decimal.Decimal `bun:"referral_earnings,type:numeric(20,2),notnull,default:0" json:"referral_earnings"`
	TotalDeposited   decimal.Decimal `bun:"total_deposited,type:numeric(20,2),notnull,default:0" json:"total_deposited"`
	TotalWithdrawn   decimal.Decimal `bun:"total_withdrawn,type:numeric(20,2),notnull,default:0" json:"total_withdrawn"`
	HasFirstDeposit  bool            `bun:"has_first_deposit,notnull,default:false" json:"has_first_deposit"`
	ReferrerID       *int64          `bun:"referrer_id" json:"referrer_id"`
	FarmingStartTime *time.Time      `bun:"farming_start_time" json:"farming_start_time"`
	FarmingEndTime   *time.Time      `bun:"farming_end_time" json:"farming_end_time"`
	FarmingRate      decimal.Decimal `bun:"farming_rate,type:numeric(20,2),notnull" json:"farming_rate"`
	BoostMultiplier  decimal.Decimal `bun:"boost_multiplier,type:numeric(10,2),notnull" json:"boost_multiplier"`
	BoostEndTime     *time.Time      `bun:"boost_end_time" json:"boost_end_time"`
	IsActive         bool            `bun:"is_active,notnull" json:"is_active"`
	CreatedAt        time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time       `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	IsNewAccount bool `bun:"-" json:"is_new_account"`
}

// HasFarmingSession reports whether a start/end pair is recorded, claimed or not.
func (a *Account) HasFarmingSession() bool {
	return a.FarmingStartTime != nil && a.FarmingEndTime != nil
}

// EffectiveMultiplier is the boost multiplier at the given instant. An expired
// boost multiplies by one.
func (a *Account) EffectiveMultiplier(now time.Time) decimal.Decimal {
	if a.BoostEndTime != nil && !now.Before(*a.BoostEndTime) {
		return decimal.NewFromInt(1)
	}
	if a.BoostMultiplier.IsZero() {
		return decimal.NewFromInt(1)
	}
	return a.BoostMultiplier
}

// AccountFromAuth only use in middleware
type AccountFromAuth struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	StartParam string `json:"start_param"`
}

type AccountSummary struct {
	Account       *Account       `json:"account"`
	ActiveBoost   *BoostPurchase `json:"active_boost"`
	ReferralStats *ReferralStats `json:"referral_stats"`
	Farming       *FarmingStatus `json:"farming"`
}
