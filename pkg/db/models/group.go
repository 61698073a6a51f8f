package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Group is a shared shopping group with no membership cap and an optional
// scheduled shopping slot.
type Group struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string         `gorm:"column:name;not null"`
	CreatedBy     string         `gorm:"column:created_by;type:text;not null;index:groups_created_by_idx"`
	Members       pq.StringArray `gorm:"column:members;type:text[];not null;default:ARRAY[]::text[]"`
	InviteCode    string         `gorm:"column:invite_code;type:text;not null;uniqueIndex:groups_invite_code_key"`
	ScheduledDate *string        `gorm:"column:scheduled_date;type:text"`
	ScheduledTime *string        `gorm:"column:scheduled_time;type:text"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
