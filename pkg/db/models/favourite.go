package models

import (
	"time"

	"github.com/google/uuid"
)

// FavouriteTypeShop is the only favourite type currently stored.
const FavouriteTypeShop = "shop"

// Favourite links a user to a shop they starred.
type Favourite struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    string    `gorm:"column:user_id;type:text;not null;index:favourites_user_id_idx;uniqueIndex:favourites_user_shop_type_key"`
	ShopID    uuid.UUID `gorm:"column:shop_id;type:uuid;not null;uniqueIndex:favourites_user_shop_type_key"`
	Type      string    `gorm:"column:type;type:text;not null;default:'shop';uniqueIndex:favourites_user_shop_type_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
