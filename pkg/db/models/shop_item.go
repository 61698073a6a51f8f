package models

import (
	"time"

	"github.com/google/uuid"
)

// ShopItem is a line item owned by exactly one shop. Shop items carry no
// author column; shops are private to their creator.
type ShopItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID    uuid.UUID `gorm:"column:shop_id;type:uuid;not null;index:shop_items_shop_id_idx"`
	Name      string    `gorm:"column:name;not null"`
	Completed bool      `gorm:"column:completed;not null;default:false"`
	BrandName string    `gorm:"column:brand_name;not null;default:''"`
	Amount    string    `gorm:"column:amount;not null;default:''"`
	Quantity  string    `gorm:"column:quantity;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
