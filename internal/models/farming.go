package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FarmingPhase string

const (
	FarmingPhaseIdle      FarmingPhase = "idle"
	FarmingPhaseRunning   FarmingPhase = "running"
	FarmingPhaseClaimable FarmingPhase = "claimable"
)

type FarmingStatus struct {
	Phase            FarmingPhase    `json:"phase"`
	StartTime        *time.Time      `json:"start_time"`
	EndTime          *time.Time      `json:"end_time"`
	RemainingSeconds int64           `json:"remaining_seconds"`
	Rate             decimal.Decimal `json:"rate"`
	Multiplier       decimal.Decimal `json:"multiplier"`
	ProjectedReward  decimal.Decimal `json:"projected_reward"`
}

type Stats struct {
	TotalUsers         int             `json:"total_users"`
	TotalUsdt          decimal.Decimal `json:"total_usdt"`
	ActiveFarmers      int             `json:"active_farmers"`
	PendingWithdrawals int             `json:"pending_withdrawals"`
}
