package favourites

import (
	"context"

	"github.com/google/uuid"
	"github.com/listplus/listplus-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates favourite persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favourites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Exists reports whether the user already favourited the shop.
func (r *Repository) Exists(ctx context.Context, userID string, shopID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favourite{}).
		Where("user_id = ? AND shop_id = ? AND type = ?", userID, shopID, models.FavouriteTypeShop).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a favourite row.
func (r *Repository) Create(ctx context.Context, fav *models.Favourite) error {
	return r.db.WithContext(ctx).Create(fav).Error
}

// DeleteAll removes every favourite row matching the user-shop pair and
// returns how many rows went away.
func (r *Repository) DeleteAll(ctx context.Context, userID string, shopID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND shop_id = ? AND type = ?", userID, shopID, models.FavouriteTypeShop).
		Delete(&models.Favourite{})
	return res.RowsAffected, res.Error
}

// ListByUser returns the user's favourite rows, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.Favourite, error) {
	var favs []models.Favourite
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, models.FavouriteTypeShop).
		Order("created_at DESC").
		Find(&favs).Error; err != nil {
		return nil, err
	}
	return favs, nil
}
