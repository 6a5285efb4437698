package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Setting struct {
	bun.BaseModel `bun:"table:setting"`
	Key           string    `bun:"key,pk" json:"key"`
	Value         string    `bun:"value" json:"value"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
