package models

import (
	"time"

	"github.com/google/uuid"
)

// GroupItem is a line item owned by exactly one group.
type GroupItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID   uuid.UUID `gorm:"column:group_id;type:uuid;not null;index:group_items_group_id_idx"`
	Name      string    `gorm:"column:name;not null"`
	Completed bool      `gorm:"column:completed;not null;default:false"`
	BrandName string    `gorm:"column:brand_name;not null;default:''"`
	Amount    string    `gorm:"column:amount;not null;default:''"`
	Quantity  string    `gorm:"column:quantity;not null;default:''"`
	CreatedBy string    `gorm:"column:created_by;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// GroupCancelledItem is the archive snapshot written when an incomplete
// group item is deleted.
type GroupCancelledItem struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID           uuid.UUID `gorm:"column:group_id;type:uuid;not null;index:group_cancelled_items_group_id_idx"`
	Name              string    `gorm:"column:name;not null"`
	BrandName         string    `gorm:"column:brand_name;not null;default:''"`
	Amount            string    `gorm:"column:amount;not null;default:''"`
	Quantity          string    `gorm:"column:quantity;not null;default:''"`
	OriginalCreatedAt time.Time `gorm:"column:original_created_at;not null"`
	OriginalCreatedBy string    `gorm:"column:original_created_by;type:text;not null"`
	CancelledAt       time.Time `gorm:"column:cancelled_at;autoCreateTime"`
	CancelledBy       string    `gorm:"column:cancelled_by;type:text;not null"`
}
