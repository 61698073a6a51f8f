package lists

import (
	"context"

	"github.com/google/uuid"
	"github.com/listplus/listplus-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates list and list-item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a list repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a list by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.List, error) {
	var list models.List
	if err := r.db.WithContext(ctx).First(&list, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// ListByMember returns every list the user belongs to.
func (r *Repository) ListByMember(ctx context.Context, userID string) ([]models.List, error) {
	var lists []models.List
	if err := r.db.WithContext(ctx).
		Where("? = ANY(members)", userID).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// Create inserts a new list row.
func (r *Repository) Create(ctx context.Context, list *models.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// Update persists the full list row.
func (r *Repository) Update(ctx context.Context, list *models.List) error {
	return r.db.WithContext(ctx).Save(list).Error
}

// MutateForUpdate loads the list under a row lock, applies fn and saves the
// result, all in one transaction. Concurrent membership mutations serialize
// on the lock, so a capacity check inside fn cannot be raced past.
func (r *Repository) MutateForUpdate(ctx context.Context, id uuid.UUID, fn func(list *models.List) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list models.List
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&list, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&list); err != nil {
			return err
		}
		return tx.Save(&list).Error
	})
}

// MutateByInviteCode is MutateForUpdate keyed by invite code instead of id,
// returning the saved row.
func (r *Repository) MutateByInviteCode(ctx context.Context, code string, fn func(list *models.List) error) (*models.List, error) {
	var list models.List
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&list, "invite_code = ?", code).Error; err != nil {
			return err
		}
		if err := fn(&list); err != nil {
			return err
		}
		return tx.Save(&list).Error
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteCascade removes the list and all of its items in one transaction.
func (r *Repository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&models.ListItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.List{}, "id = ?", id).Error
	})
}

// ListItems returns every item on the list.
func (r *Repository) ListItems(ctx context.Context, listID uuid.UUID) ([]models.ListItem, error) {
	var items []models.ListItem
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindItem loads one item scoped to its list.
func (r *Repository) FindItem(ctx context.Context, listID, itemID uuid.UUID) (*models.ListItem, error) {
	var item models.ListItem
	if err := r.db.WithContext(ctx).
		First(&item, "id = ? AND list_id = ?", itemID, listID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.ListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateItem persists the full item row.
func (r *Repository) UpdateItem(ctx context.Context, item *models.ListItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes one item scoped to its list.
func (r *Repository) DeleteItem(ctx context.Context, listID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND list_id = ?", itemID, listID).
		Delete(&models.ListItem{}).Error
}
