package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// List is a two-person shared shopping list.
type List struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string         `gorm:"column:name;not null"`
	CreatedBy  string         `gorm:"column:created_by;type:text;not null;index:lists_created_by_idx"`
	Members    pq.StringArray `gorm:"column:members;type:text[];not null;default:ARRAY[]::text[]"`
	InviteCode string         `gorm:"column:invite_code;type:text;not null;uniqueIndex:lists_invite_code_key"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
