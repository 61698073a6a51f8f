package shops

import (
	"context"

	"github.com/google/uuid"
	"github.com/listplus/listplus-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates shop and shop-item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a shop repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a shop by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// ListByCreator returns every shop the user created.
func (r *Repository) ListByCreator(ctx context.Context, userID string) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// FindByIDs resolves shops for the given ids; unknown ids are absent from
// the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// Create inserts a new shop row.
func (r *Repository) Create(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

// Update persists the full shop row.
func (r *Repository) Update(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// DeleteCascade removes the shop, its items and any favourites pointing at
// it, all in one transaction.
func (r *Repository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shop_id = ?", id).Delete(&models.ShopItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shop_id = ?", id).Delete(&models.Favourite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Shop{}, "id = ?", id).Error
	})
}

// ListItems returns every item in the shop.
func (r *Repository) ListItems(ctx context.Context, shopID uuid.UUID) ([]models.ShopItem, error) {
	var items []models.ShopItem
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindItem loads one item scoped to its shop.
func (r *Repository) FindItem(ctx context.Context, shopID, itemID uuid.UUID) (*models.ShopItem, error) {
	var item models.ShopItem
	if err := r.db.WithContext(ctx).
		First(&item, "id = ? AND shop_id = ?", itemID, shopID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.ShopItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateItem persists the full item row.
func (r *Repository) UpdateItem(ctx context.Context, item *models.ShopItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes one item scoped to its shop.
func (r *Repository) DeleteItem(ctx context.Context, shopID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", itemID, shopID).
		Delete(&models.ShopItem{}).Error
}
