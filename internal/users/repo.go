package users

import (
	"context"

	"github.com/listplus/listplus-backend/pkg/db/models"
	"gorm.io/gorm"
)

// batchChunkSize caps how many ids a single batch SELECT carries.
const batchChunkSize = 10

// Repository encapsulates user persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a user repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a user by their identity subject.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs resolves users in id chunks and concatenates the results.
// Unknown ids are silently absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for start := 0; start < len(ids); start += batchChunkSize {
		end := start + batchChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		var chunk []models.User
		if err := r.db.WithContext(ctx).
			Where("id IN ?", ids[start:end]).
			Find(&chunk).Error; err != nil {
			return nil, err
		}
		users = append(users, chunk...)
	}
	return users, nil
}

// Create inserts a new user row.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update persists the full user row.
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes the user row.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}
