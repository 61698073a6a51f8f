// Package favourites maintains the user-to-shop favourites relation.
package favourites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/listplus/listplus-backend/internal/shops"
	"github.com/listplus/listplus-backend/pkg/db"
	"github.com/listplus/listplus-backend/pkg/db/models"
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
	"gorm.io/gorm"
)

// shopBatchSize caps how many shop ids a single lookup query carries.
const shopBatchSize = 10

const favouriteConstraint = "favourites_user_shop_type_key"

type favouriteRepository interface {
	Exists(ctx context.Context, userID string, shopID uuid.UUID) (bool, error)
	Create(ctx context.Context, fav *models.Favourite) error
	DeleteAll(ctx context.Context, userID string, shopID uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.Favourite, error)
}

type shopLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Shop, error)
}

// Service exposes favourites operations.
type Service interface {
	Add(ctx context.Context, userID string, shopID uuid.UUID) error
	Remove(ctx context.Context, userID string, shopID uuid.UUID) error
	List(ctx context.Context, userID string) ([]shops.ShopDTO, error)
}

// ServiceParams groups dependencies for the favourites service.
type ServiceParams struct {
	Repo     *Repository
	ShopRepo *shops.Repository
}

type service struct {
	repo      favouriteRepository
	shopsRepo shopLookup
}

// NewService builds a favourites service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favourites repo is required")
	}
	if params.ShopRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop repo is required")
	}
	return &service{repo: params.Repo, shopsRepo: params.ShopRepo}, nil
}

func newServiceWithRepos(repo favouriteRepository, shopRepo shopLookup) *service {
	return &service{repo: repo, shopsRepo: shopRepo}
}

// Add favourites the shop for the user. Favouriting twice is rejected; the
// unique index backs the guard against concurrent adds.
func (s *service) Add(ctx context.Context, userID string, shopID uuid.UUID) error {
	if shopID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if _, err := s.shopsRepo.FindByID(ctx, shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shop not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}

	exists, err := s.repo.Exists(ctx, userID, shopID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check favourite")
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeConflict, "shop is already favourited")
	}

	fav := &models.Favourite{UserID: userID, ShopID: shopID, Type: models.FavouriteTypeShop}
	if err := s.repo.Create(ctx, fav); err != nil {
		if db.IsUniqueViolation(err, favouriteConstraint) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "shop is already favourited")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create favourite")
	}
	return nil
}

// Remove drops the user's favourite for the shop, including any duplicate
// rows left by pre-index data.
func (s *service) Remove(ctx context.Context, userID string, shopID uuid.UUID) error {
	removed, err := s.repo.DeleteAll(ctx, userID, shopID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete favourite")
	}
	if removed == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "favourite not found")
	}
	return nil
}

// List resolves the user's favourite shops, fetching shop rows in id chunks.
func (s *service) List(ctx context.Context, userID string) ([]shops.ShopDTO, error) {
	favs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favourites")
	}

	ids := make([]uuid.UUID, 0, len(favs))
	for _, fav := range favs {
		ids = append(ids, fav.ShopID)
	}

	dtos := make([]shops.ShopDTO, 0, len(ids))
	for start := 0; start < len(ids); start += shopBatchSize {
		end := start + shopBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		records, err := s.shopsRepo.FindByIDs(ctx, ids[start:end])
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favourite shops")
		}
		for i := range records {
			shop := &records[i]
			dtos = append(dtos, shops.ShopDTO{
				ID:        shop.ID,
				Name:      shop.Name,
				Type:      shop.Type,
				Place:     shop.Place,
				Distance:  shop.Distance,
				CreatedBy: shop.CreatedBy,
				CreatedAt: shop.CreatedAt,
				UpdatedAt: shop.UpdatedAt,
			})
		}
	}
	return dtos, nil
}
