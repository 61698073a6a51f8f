package groups

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/listplus/listplus-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates group, group-item and cancelled-item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a group repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a group by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// ListByMember returns every group the user belongs to.
func (r *Repository) ListByMember(ctx context.Context, userID string) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.WithContext(ctx).
		Where("? = ANY(members)", userID).
		Order("created_at DESC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Create inserts a new group row.
func (r *Repository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

// Update persists the full group row.
func (r *Repository) Update(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

// MutateForUpdate loads the group under a row lock, applies fn and saves the
// result, all in one transaction.
func (r *Repository) MutateForUpdate(ctx context.Context, id uuid.UUID, fn func(group *models.Group) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&group, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&group); err != nil {
			return err
		}
		return tx.Save(&group).Error
	})
}

// MutateByInviteCode is MutateForUpdate keyed by invite code instead of id,
// returning the saved row.
func (r *Repository) MutateByInviteCode(ctx context.Context, code string, fn func(group *models.Group) error) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&group, "invite_code = ?", code).Error; err != nil {
			return err
		}
		if err := fn(&group); err != nil {
			return err
		}
		return tx.Save(&group).Error
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteCascade removes the group, its items and its cancelled-item archive
// in one transaction.
func (r *Repository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupCancelledItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, "id = ?", id).Error
	})
}

// ListItems returns every item on the group.
func (r *Repository) ListItems(ctx context.Context, groupID uuid.UUID) ([]models.GroupItem, error) {
	var items []models.GroupItem
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindItem loads one item scoped to its group.
func (r *Repository) FindItem(ctx context.Context, groupID, itemID uuid.UUID) (*models.GroupItem, error) {
	var item models.GroupItem
	if err := r.db.WithContext(ctx).
		First(&item, "id = ? AND group_id = ?", itemID, groupID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.GroupItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateItem persists the full item row.
func (r *Repository) UpdateItem(ctx context.Context, item *models.GroupItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes one item scoped to its group without archiving.
func (r *Repository) DeleteItem(ctx context.Context, groupID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND group_id = ?", itemID, groupID).
		Delete(&models.GroupItem{}).Error
}

// ArchiveAndDeleteItem snapshots the item into the cancelled archive and
// removes it, both in one transaction.
func (r *Repository) ArchiveAndDeleteItem(ctx context.Context, item *models.GroupItem, cancelledBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		archived := models.GroupCancelledItem{
			GroupID:           item.GroupID,
			Name:              item.Name,
			BrandName:         item.BrandName,
			Amount:            item.Amount,
			Quantity:          item.Quantity,
			OriginalCreatedAt: item.CreatedAt,
			OriginalCreatedBy: item.CreatedBy,
			CancelledAt:       time.Now().UTC(),
			CancelledBy:       cancelledBy,
		}
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND group_id = ?", item.ID, item.GroupID).
			Delete(&models.GroupItem{}).Error
	})
}

// ListCancelledItems returns the archive for a group, newest first.
func (r *Repository) ListCancelledItems(ctx context.Context, groupID uuid.UUID) ([]models.GroupCancelledItem, error) {
	var items []models.GroupCancelledItem
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("cancelled_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
