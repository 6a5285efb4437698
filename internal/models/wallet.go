package models

type WithdrawalCheck struct {
	CanWithdraw bool   `json:"can_withdraw"`
	Reason      string `json:"reason,omitempty"`
}
