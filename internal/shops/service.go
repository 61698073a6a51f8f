package shops

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/listplus/listplus-backend/internal/policy"
	"github.com/listplus/listplus-backend/pkg/db/models"
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
	"gorm.io/gorm"
)

type shopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	ListByCreator(ctx context.Context, userID string) ([]models.Shop, error)
	Create(ctx context.Context, shop *models.Shop) error
	Update(ctx context.Context, shop *models.Shop) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, shopID uuid.UUID) ([]models.ShopItem, error)
	FindItem(ctx context.Context, shopID, itemID uuid.UUID) (*models.ShopItem, error)
	CreateItem(ctx context.Context, item *models.ShopItem) error
	UpdateItem(ctx context.Context, item *models.ShopItem) error
	DeleteItem(ctx context.Context, shopID, itemID uuid.UUID) error
}

// Service exposes shop lifecycle and item operations. Shops have no
// membership; every operation is creator-gated.
type Service interface {
	Create(ctx context.Context, actor string, input CreateShopInput) (*ShopDTO, error)
	ListMine(ctx context.Context, actor string) ([]ShopDTO, error)
	Get(ctx context.Context, actor string, id uuid.UUID) (*ShopDTO, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input UpdateShopInput) (*ShopDTO, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error

	ListItems(ctx context.Context, actor string, shopID uuid.UUID) ([]ItemDTO, error)
	AddItem(ctx context.Context, actor string, shopID uuid.UUID, input AddItemInput) (*ItemDTO, error)
	UpdateItem(ctx context.Context, actor string, shopID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, actor string, shopID, itemID uuid.UUID) error
}

type service struct {
	repo shopRepository
}

// NewService builds a shop service with the required repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop repo is required")
	}
	return &service{repo: repo}, nil
}

func newServiceWithRepo(repo shopRepository) *service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, actor string, input CreateShopInput) (*ShopDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name is required")
	}

	shop := &models.Shop{
		Name:      name,
		Type:      strings.TrimSpace(input.Type),
		Place:     strings.TrimSpace(input.Place),
		Distance:  input.Distance,
		CreatedBy: actor,
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
	}
	return toShopDTO(shop), nil
}

func (s *service) ListMine(ctx context.Context, actor string) ([]ShopDTO, error) {
	records, err := s.repo.ListByCreator(ctx, actor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shops")
	}
	dtos := make([]ShopDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *toShopDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, actor string, id uuid.UUID) (*ShopDTO, error) {
	shop, err := s.ownedShop(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toShopDTO(shop), nil
}

func (s *service) Update(ctx context.Context, actor string, id uuid.UUID, input UpdateShopInput) (*ShopDTO, error) {
	shop, err := s.ownedShop(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name cannot be empty")
		}
		shop.Name = trimmed
	}
	if input.Type != nil {
		shop.Type = strings.TrimSpace(*input.Type)
	}
	if input.Place != nil {
		shop.Place = strings.TrimSpace(*input.Place)
	}
	if input.Distance != nil {
		shop.Distance = input.Distance
	}
	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop")
	}
	return toShopDTO(shop), nil
}

// Delete removes the shop together with its items and favourites. The
// cascade is all-or-nothing.
func (s *service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	if _, err := s.ownedShop(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shop")
	}
	return nil
}

func (s *service) ListItems(ctx context.Context, actor string, shopID uuid.UUID) ([]ItemDTO, error) {
	if _, err := s.ownedShop(ctx, actor, shopID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListItems(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop items")
	}
	dtos := make([]ItemDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *toItemDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) AddItem(ctx context.Context, actor string, shopID uuid.UUID, input AddItemInput) (*ItemDTO, error) {
	if _, err := s.ownedShop(ctx, actor, shopID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}

	item := &models.ShopItem{
		ShopID:    shopID,
		Name:      name,
		BrandName: input.BrandName,
		Amount:    input.Amount,
		Quantity:  input.Quantity,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop item")
	}
	return toItemDTO(item), nil
}

func (s *service) UpdateItem(ctx context.Context, actor string, shopID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	if _, err := s.ownedShop(ctx, actor, shopID); err != nil {
		return nil, err
	}
	item, err := s.findItem(ctx, shopID, itemID)
	if err != nil {
		return nil, err
	}
	applyItemPatch(item, input)
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop item")
	}
	return toItemDTO(item), nil
}

func (s *service) DeleteItem(ctx context.Context, actor string, shopID, itemID uuid.UUID) error {
	if _, err := s.ownedShop(ctx, actor, shopID); err != nil {
		return err
	}
	if _, err := s.findItem(ctx, shopID, itemID); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, shopID, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shop item")
	}
	return nil
}

func (s *service) ownedShop(ctx context.Context, actor string, id uuid.UUID) (*models.Shop, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	m := policy.Membership{Kind: policy.KindShop, CreatedBy: shop.CreatedBy}
	if !m.CanView(actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "this shop belongs to another user")
	}
	return shop, nil
}

func (s *service) findItem(ctx context.Context, shopID, itemID uuid.UUID) (*models.ShopItem, error) {
	item, err := s.repo.FindItem(ctx, shopID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shop item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop item")
	}
	return item, nil
}

func applyItemPatch(item *models.ShopItem, input UpdateItemInput) {
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Completed != nil {
		item.Completed = *input.Completed
	}
	if input.BrandName != nil {
		item.BrandName = *input.BrandName
	}
	if input.Amount != nil {
		item.Amount = *input.Amount
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
}
