package models

import (
	"time"

	"github.com/google/uuid"
)

// Shop is a creator-private store entry; shops are never shared by members.
type Shop struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Type      string    `gorm:"column:type;not null"`
	Place     string    `gorm:"column:place;not null"`
	Distance  *string   `gorm:"column:distance;type:text"`
	CreatedBy string    `gorm:"column:created_by;type:text;not null;index:shops_created_by_idx"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
