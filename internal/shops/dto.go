package shops

import (
	"time"

	"github.com/google/uuid"
	"github.com/listplus/listplus-backend/pkg/db/models"
)

// ShopDTO is the API shape of a shop.
type ShopDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Place     string    `json:"place"`
	Distance  *string   `json:"distance,omitempty"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateShopInput carries the fields for a new shop.
type CreateShopInput struct {
	Name     string  `json:"name" validate:"required"`
	Type     string  `json:"type" validate:"required"`
	Place    string  `json:"place" validate:"required"`
	Distance *string `json:"distance,omitempty"`
}

// UpdateShopInput is a partial shop update; nil fields are untouched.
type UpdateShopInput struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	Place    *string `json:"place,omitempty"`
	Distance *string `json:"distance,omitempty"`
}

// ItemDTO is the API shape of a shop item. Shop items carry no author.
type ItemDTO struct {
	ID        uuid.UUID `json:"id"`
	ShopID    uuid.UUID `json:"shopId"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
	BrandName string    `json:"brandName"`
	Amount    string    `json:"amount"`
	Quantity  string    `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AddItemInput carries the fields for a new shop item.
type AddItemInput struct {
	Name      string `json:"name" validate:"required"`
	BrandName string `json:"brandName,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Quantity  string `json:"quantity,omitempty"`
}

// UpdateItemInput is a partial item update; nil fields are untouched.
type UpdateItemInput struct {
	Name      *string `json:"name,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	BrandName *string `json:"brandName,omitempty"`
	Amount    *string `json:"amount,omitempty"`
	Quantity  *string `json:"quantity,omitempty"`
}

func toShopDTO(shop *models.Shop) *ShopDTO {
	return &ShopDTO{
		ID:        shop.ID,
		Name:      shop.Name,
		Type:      shop.Type,
		Place:     shop.Place,
		Distance:  shop.Distance,
		CreatedBy: shop.CreatedBy,
		CreatedAt: shop.CreatedAt,
		UpdatedAt: shop.UpdatedAt,
	}
}

func toItemDTO(item *models.ShopItem) *ItemDTO {
	return &ItemDTO{
		ID:        item.ID,
		ShopID:    item.ShopID,
		Name:      item.Name,
		Completed: item.Completed,
		BrandName: item.BrandName,
		Amount:    item.Amount,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
