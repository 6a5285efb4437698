package services

import (
	"fmt"
	"strings"
	"time"
)

const (
	SETTING_REFERRAL_LEVEL_COMMISSION = "referral_level%d_commission"
	SETTING_DEPOSIT_ENABLED           = "deposit_enabled"
	SETTING_WITHDRAWAL_ENABLED        = "withdrawal_enabled"
	SETTING_TASK_VERIFICATION_ENABLED = "task_verification_enabled"

	FarmingSessionLength = 4 * time.Hour

	DEFAULT_FARMING_RATE = 120

	MIN_WITHDRAWAL_AMOUNT    = 12
	MIN_FIRST_DEPOSIT_AMOUNT = 5
	DEPOSIT_PER_WITHDRAWAL   = 3

	CACHE_TTL_1_MIN   = 1 * time.Minute
	CACHE_TTL_5_MINS  = 5 * time.Minute
	CACHE_TTL_15_MINS = 15 * time.Minute

	TELEGRAM_API_BASE_URL = "https://api.telegram.org"

	TELEGRAM_TASK_RATE_LIMIT_PER_MINUTE = 10
	USER_MUTATION_RATE_LIMIT_PER_MINUTE = 30

	REFERRAL_START_PARAM_PREFIX = "ref_"
)

// default commission per level, in percent
var defaultReferralCommission = map[int]int64{1: 10, 2: 5, 3: 2}

func SettingKeyReferralCommission(level int) string {
	return fmt.Sprintf(SETTING_REFERRAL_LEVEL_COMMISSION, level)
}

func LockKeyAccount(accountID int64) string {
	return fmt.Sprintf("lock:account:%d", accountID)
}

// db
func DBKeySetting(key string) string {
	return fmt.Sprintf("setting:%s", strings.ToLower(key))
}

func DBKeyActiveTasks() string {
	return "task:active"
}

func DBKeyActiveBoosts() string {
	return "boost:active"
}

func LimitKeyAccountMutation(accountID int64) string {
	return fmt.Sprintf("limit:account:%d", accountID)
}

func LimitKeyAccountTaskVerify(accountID int64) string {
	return fmt.Sprintf("limit:account-task-verify:%d", accountID)
}
