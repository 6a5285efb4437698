package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type TaskCategory string

const (
	TaskCategoryTelegram  TaskCategory = "telegram"
	TaskCategoryInstagram TaskCategory = "instagram"
	TaskCategoryYoutube   TaskCategory = "youtube"
	TaskCategoryTwitter   TaskCategory = "twitter"
)

type Task struct {
	bun.BaseModel `bun:"table:task"`
	ID            int64           `bun:"id,pk,autoincrement" json:"id"`
	Title         string          `bun:"title,notnull" json:"title"`
	Description   string          `bun:"description" json:"description"`
	Reward        decimal.Decimal `bun:"reward,type:numeric(20,2),notnull" json:"reward"`
	Category      TaskCategory    `bun:"category" json:"category"`
	URL           string          `bun:"url" json:"url"`
	Icon          string          `bun:"icon" json:"icon"`
	IsActive      bool            `bun:"is_active,notnull" json:"is_active"`
	CreatedAt     time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type TaskCompletion struct {
	bun.BaseModel `bun:"table:task_completion"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	AccountID     int64     `bun:"account_id,notnull" json:"account_id"`
	TaskID        int64     `bun:"task_id,notnull" json:"task_id"`
	CompletedAt   time.Time `bun:"completed_at,notnull,default:current_timestamp" json:"completed_at"`
}
