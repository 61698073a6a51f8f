package models

import (
	"time"

	"github.com/google/uuid"
)

// ListItem is a line item owned by exactly one list.
type ListItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ListID    uuid.UUID `gorm:"column:list_id;type:uuid;not null;index:list_items_list_id_idx"`
	Name      string    `gorm:"column:name;not null"`
	Completed bool      `gorm:"column:completed;not null;default:false"`
	BrandName string    `gorm:"column:brand_name;not null;default:''"`
	Amount    string    `gorm:"column:amount;not null;default:''"`
	Quantity  string    `gorm:"column:quantity;not null;default:''"`
	CreatedBy string    `gorm:"column:created_by;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
